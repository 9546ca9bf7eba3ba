package model

import "github.com/shopspring/decimal"

// Transaction is one normalized bank transaction.
//
// Date is an ISO "YYYY-MM-DD" string and is compared lexicographically
// throughout; zero-padding is required for ordering to hold. Amount sign is
// the sole direction signal: negative = money out, positive = money in.
type Transaction struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant"`
	Category Category        `json:"category"`
	Account  string          `json:"account"`
	Pending  bool            `json:"pending,omitempty"`
}

// DateFormat is the layout for Transaction.Date values.
const DateFormat = "2006-01-02"
