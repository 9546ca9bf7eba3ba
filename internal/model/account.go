package model

import "github.com/shopspring/decimal"

// AccountType classifies bank accounts as the provider reports them.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
)

// Account is one bank account attached to a connection.
// Credit balances represent amount owed and are expected to be negative.
type Account struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Type             AccountType      `json:"type"`
	Balance          decimal.Decimal  `json:"balance"`
	AvailableBalance *decimal.Decimal `json:"availableBalance,omitempty"`
	Institution      string           `json:"institution,omitempty"`
}

// IsCheckingLike reports whether the account counts toward the checking
// figure in balance aggregates.
func (a Account) IsCheckingLike() bool {
	return a.Type == AccountTypeChecking || a.Type == AccountTypeDepository
}
