package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchat-dev/finchat/internal/model"
)

// HTTPClient talks to the provider's REST API. Credentials ride in the
// request body, matching the provider's convention.
type HTTPClient struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
}

// NewHTTPClient creates an HTTPClient against baseURL (e.g. the provider's
// sandbox host).
func NewHTTPClient(baseURL, clientID, secret string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type linkTokenRequest struct {
	ClientID     string   `json:"client_id"`
	Secret       string   `json:"secret"`
	ClientName   string   `json:"client_name"`
	Language     string   `json:"language"`
	CountryCodes []string `json:"country_codes"`
	User         struct {
		ClientUserID string `json:"client_user_id"`
	} `json:"user"`
	Products []string `json:"products"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
	RequestID string `json:"request_id"`
}

func (c *HTTPClient) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	req := linkTokenRequest{
		ClientID:     c.clientID,
		Secret:       c.secret,
		ClientName:   "finchat",
		Language:     "en",
		CountryCodes: []string{"US"},
		Products:     []string{"transactions"},
	}
	req.User.ClientUserID = userID

	var resp linkTokenResponse
	if err := c.post(ctx, "/link/token/create", req, &resp); err != nil {
		return "", fmt.Errorf("creating link token: %w", err)
	}
	return resp.LinkToken, nil
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

func (c *HTTPClient) ExchangePublicToken(ctx context.Context, publicToken string) (Credentials, error) {
	req := exchangeRequest{ClientID: c.clientID, Secret: c.secret, PublicToken: publicToken}

	var resp exchangeResponse
	if err := c.post(ctx, "/item/public_token/exchange", req, &resp); err != nil {
		return Credentials{}, fmt.Errorf("exchanging public token: %w", err)
	}
	return Credentials{AccessToken: resp.AccessToken, ItemID: resp.ItemID}, nil
}

type accessTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type wireAccount struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	Balances  struct {
		Current   float64  `json:"current"`
		Available *float64 `json:"available"`
	} `json:"balances"`
	InstitutionName string `json:"institution_name"`
}

type accountsResponse struct {
	Accounts []wireAccount `json:"accounts"`
}

func (c *HTTPClient) FetchAccounts(ctx context.Context, accessToken string) ([]model.Account, error) {
	req := accessTokenRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: accessToken}

	var resp accountsResponse
	if err := c.post(ctx, "/accounts/balance/get", req, &resp); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	accts := make([]model.Account, len(resp.Accounts))
	for i, wa := range resp.Accounts {
		accts[i] = normalizeAccount(wa)
	}
	return accts, nil
}

type wireTransaction struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	MerchantName  string  `json:"merchant_name"`
	Name          string  `json:"name"`
	AccountName   string  `json:"account_name"`
	Pending       bool    `json:"pending"`
	PersonalFinanceCategory struct {
		Primary  string `json:"primary"`
		Detailed string `json:"detailed"`
	} `json:"personal_finance_category"`
}

type transactionsResponse struct {
	Transactions []wireTransaction `json:"transactions"`
}

func (c *HTTPClient) FetchTransactions(ctx context.Context, accessToken string) ([]model.Transaction, error) {
	req := accessTokenRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: accessToken}

	var resp transactionsResponse
	if err := c.post(ctx, "/transactions/get", req, &resp); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	txns := make([]model.Transaction, len(resp.Transactions))
	for i, wt := range resp.Transactions {
		txns[i] = normalizeTransaction(wt)
	}
	return txns, nil
}

func normalizeAccount(wa wireAccount) model.Account {
	acctType := model.AccountType(wa.Type)
	if wa.Type == "depository" && wa.Subtype == "checking" {
		acctType = model.AccountTypeChecking
	}

	a := model.Account{
		ID:          wa.AccountID,
		Name:        wa.Name,
		Type:        acctType,
		Balance:     decimal.NewFromFloat(wa.Balances.Current),
		Institution: wa.InstitutionName,
	}
	if wa.Balances.Available != nil {
		avail := decimal.NewFromFloat(*wa.Balances.Available)
		a.AvailableBalance = &avail
	}

	// The provider reports credit balances as positive amounts owed; flip
	// them so internal balances carry the debt sign.
	if a.Type == model.AccountTypeCredit && a.Balance.IsPositive() {
		a.Balance = a.Balance.Neg()
	}
	return a
}

func normalizeTransaction(wt wireTransaction) model.Transaction {
	merchant := wt.MerchantName
	if merchant == "" {
		merchant = wt.Name
	}

	rawCategory := wt.PersonalFinanceCategory.Detailed
	if rawCategory == "" {
		rawCategory = wt.PersonalFinanceCategory.Primary
	}

	return model.Transaction{
		ID:       wt.TransactionID,
		Date:     wt.Date,
		Merchant: merchant,
		// The provider reports outflows as positive; internal convention is
		// the opposite.
		Amount:   decimal.NewFromFloat(wt.Amount).Neg(),
		Category: MapCategory(rawCategory),
		Account:  wt.AccountName,
		Pending:  wt.Pending,
	}
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, truncate(string(data), 200))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
