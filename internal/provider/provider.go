// Package provider wraps the bank-data provider: link-token issuance, token
// exchange, and account/transaction fetches. Everything the provider reports
// is normalized into the internal model before anyone downstream sees it.
package provider

import (
	"context"

	"github.com/finchat-dev/finchat/internal/model"
)

// Credentials are the result of exchanging a public token.
type Credentials struct {
	AccessToken string
	ItemID      string
}

// Client is the bank-data provider contract consumed by the sync and link
// flows.
type Client interface {
	// CreateLinkToken issues a short-lived token the link UI hands to the
	// user's browser or device.
	CreateLinkToken(ctx context.Context, userID string) (string, error)

	// ExchangePublicToken trades the public token from a completed link for
	// a long-lived access token.
	ExchangePublicToken(ctx context.Context, publicToken string) (Credentials, error)

	// FetchAccounts returns the item's accounts with current balances.
	FetchAccounts(ctx context.Context, accessToken string) ([]model.Account, error)

	// FetchTransactions returns the item's transactions, categories already
	// normalized.
	FetchTransactions(ctx context.Context, accessToken string) ([]model.Transaction, error)
}
