// Package demo provides the canned dataset served to users without a bank
// connection. Twenty transactions span every category; the two accounts give
// the demo balances a checking/credit split.
package demo

import (
	"github.com/shopspring/decimal"

	"github.com/finchat-dev/finchat/internal/model"
)

const (
	checkingName = "Everyday Checking"
	creditName   = "Travel Rewards Card"
	institution  = "First Platypus Bank"
)

// Transactions returns a fresh copy of the canned transaction set. Callers
// may sort and filter freely.
func Transactions() []model.Transaction {
	txns := make([]model.Transaction, len(cannedTransactions))
	copy(txns, cannedTransactions)
	return txns
}

// Accounts returns a fresh copy of the canned accounts: one checking, one
// credit card.
func Accounts() []model.Account {
	accts := make([]model.Account, len(cannedAccounts))
	copy(accts, cannedAccounts)
	return accts
}

var cannedAccounts = []model.Account{
	{
		ID:               "acc_demo_checking",
		Name:             checkingName,
		Type:             model.AccountTypeChecking,
		Balance:          dec("4250.33"),
		AvailableBalance: decPtr("4180.12"),
		Institution:      institution,
	},
	{
		ID:          "acc_demo_credit",
		Name:        creditName,
		Type:        model.AccountTypeCredit,
		Balance:     dec("-892.48"),
		Institution: institution,
	},
}

var cannedTransactions = []model.Transaction{
	txn("txn_001", "2026-01-02", "-45.67", "Whole Foods Market", model.CategoryGroceries, checkingName),
	txn("txn_002", "2026-01-03", "-18.40", "Chipotle", model.CategoryFood, creditName),
	txn("txn_003", "2026-01-05", "2400.00", "Acme Corp Payroll", model.CategoryIncome, checkingName),
	txn("txn_004", "2026-01-05", "-32.50", "Shell Gas Station", model.CategoryTransport, creditName),
	txn("txn_005", "2026-01-06", "-129.99", "Amazon", model.CategoryShopping, creditName),
	txn("txn_006", "2026-01-07", "-88.12", "City Power & Light", model.CategoryUtilities, checkingName),
	txn("txn_007", "2026-01-10", "-78.97", "Trader Joe's", model.CategoryGroceries, checkingName),
	txn("txn_008", "2026-01-11", "-25.00", "AMC Theatres", model.CategoryEntertainment, creditName),
	txn("txn_009", "2026-01-12", "-15.99", "Netflix", model.CategoryEntertainment, creditName),
	txn("txn_010", "2026-01-13", "-45.00", "CVS Pharmacy", model.CategoryHealth, checkingName),
	txn("txn_011", "2026-01-15", "-1450.00", "Oakline Apartments", model.CategoryHousing, checkingName),
	txn("txn_012", "2026-01-16", "350.00", "Upwork Payout", model.CategoryIncome, checkingName),
	txn("txn_013", "2026-01-17", "-14.25", "Metro Transit", model.CategoryTransport, checkingName),
	txn("txn_014", "2026-01-19", "-52.80", "Thai Basil Kitchen", model.CategoryFood, creditName),
	txn("txn_015", "2026-01-21", "-212.40", "Delta Air Lines", model.CategoryTravel, creditName),
	txn("txn_016", "2026-01-23", "-9.99", "USPS", model.CategoryOther, checkingName),
	txn("txn_018", "2026-01-24", "500.00", "Transfer from Savings", model.CategoryTransfer, checkingName),
	txn("txn_019", "2026-01-26", "-64.30", "Target", model.CategoryShopping, creditName),
	txn("txn_017", "2026-01-27", "-95.50", "Safeway", model.CategoryGroceries, checkingName),
	txn("txn_020", "2026-01-28", "-61.45", "Comcast", model.CategoryUtilities, checkingName),
}

func txn(id, date, amount, merchant string, category model.Category, account string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Date:     date,
		Amount:   dec(amount),
		Merchant: merchant,
		Category: category,
		Account:  account,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
