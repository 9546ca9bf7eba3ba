// Package query is the read-only aggregation engine over a resolved
// transaction snapshot. Every function is pure: it never mutates its input
// and never errors for any defined input — empty or unmatched sets produce
// zeroed results.
package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finchat-dev/finchat/internal/model"
)

// Criteria are the composable transaction filters. All fields are optional;
// zero values mean "no constraint". Criteria compose conjunctively.
type Criteria struct {
	Category  string // exact match, case-insensitive
	Merchant  string // case-insensitive substring
	StartDate string // inclusive, "YYYY-MM-DD"
	EndDate   string // inclusive, "YYYY-MM-DD"
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Account   string // case-insensitive substring against account name
	Limit     int    // applied after sorting; 0 = unlimited
}

// Filter returns the transactions matching every set criterion, sorted by
// date descending. Ties keep their original relative order. An unrecognized
// category or malformed date simply matches nothing.
func Filter(txns []model.Transaction, c Criteria) []model.Transaction {
	matched := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if matches(t, c) {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date > matched[j].Date
	})

	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}
	return matched
}

func matches(t model.Transaction, c Criteria) bool {
	if c.Category != "" && !strings.EqualFold(string(t.Category), c.Category) {
		return false
	}
	if c.Merchant != "" && !strings.Contains(strings.ToLower(t.Merchant), strings.ToLower(c.Merchant)) {
		return false
	}
	if !inDateRange(t.Date, c.StartDate, c.EndDate) {
		return false
	}
	if c.MinAmount != nil && t.Amount.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && t.Amount.GreaterThan(*c.MaxAmount) {
		return false
	}
	if c.Account != "" && !strings.Contains(strings.ToLower(t.Account), strings.ToLower(c.Account)) {
		return false
	}
	return true
}

// inDateRange compares zero-padded ISO dates lexicographically; empty bounds
// are open.
func inDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// Recent returns the limit most recent transactions across all categories.
func Recent(txns []model.Transaction, limit int) []model.Transaction {
	return Filter(txns, Criteria{Limit: limit})
}

// Balance aggregates account balances. Only checking-like and credit
// accounts contribute; anything else is excluded from all three figures.
type Balance struct {
	Checking   decimal.Decimal
	CreditOwed decimal.Decimal
	NetWorth   decimal.Decimal
}

// TotalBalance sums checking-like balances, the absolute credit debt, and
// the net of the two. Credit balances are expected to be negative, so the
// net is a plain sum.
func TotalBalance(accounts []model.Account) Balance {
	var checking, credit decimal.Decimal
	for _, a := range accounts {
		switch {
		case a.IsCheckingLike():
			checking = checking.Add(a.Balance)
		case a.Type == model.AccountTypeCredit:
			credit = credit.Add(a.Balance)
		}
	}
	return Balance{
		Checking:   checking,
		CreditOwed: credit.Abs(),
		NetWorth:   checking.Add(credit),
	}
}

// CategoryTotal is the per-category slice of a spending summary.
type CategoryTotal struct {
	Total decimal.Decimal
	Count int
}

// SpendingSummary totals absolute spend per category within the optional
// inclusive date bounds. Only debits count, and income/transfer are never
// spend regardless of sign. Categories with no matches are absent.
func SpendingSummary(txns []model.Transaction, startDate, endDate string) map[model.Category]CategoryTotal {
	summary := make(map[model.Category]CategoryTotal)
	for _, t := range txns {
		if !t.Amount.IsNegative() {
			continue
		}
		if t.Category == model.CategoryIncome || t.Category == model.CategoryTransfer {
			continue
		}
		if !inDateRange(t.Date, startDate, endDate) {
			continue
		}
		ct := summary[t.Category]
		ct.Total = ct.Total.Add(t.Amount.Abs())
		ct.Count++
		summary[t.Category] = ct
	}
	return summary
}

// Result is an aggregate over a matched transaction subset.
type Result struct {
	Total        decimal.Decimal
	Count        int
	Transactions []model.Transaction
}

// IncomeSummary totals money in within the optional inclusive date bounds.
// A transaction qualifies when it is categorized as income or its amount is
// positive (which pulls in transfers-in).
func IncomeSummary(txns []model.Transaction, startDate, endDate string) Result {
	res := Result{Transactions: []model.Transaction{}}
	for _, t := range txns {
		if t.Category != model.CategoryIncome && !t.Amount.IsPositive() {
			continue
		}
		if !inDateRange(t.Date, startDate, endDate) {
			continue
		}
		res.Total = res.Total.Add(t.Amount.Abs())
		res.Count++
		res.Transactions = append(res.Transactions, t)
	}
	return res
}

// CategorySpending totals debits in a single category, matched
// case-insensitively. Unknown categories yield an empty result.
func CategorySpending(txns []model.Transaction, category string) Result {
	res := Result{Transactions: []model.Transaction{}}
	for _, t := range txns {
		if !strings.EqualFold(string(t.Category), category) {
			continue
		}
		if !t.Amount.IsNegative() {
			continue
		}
		res.Total = res.Total.Add(t.Amount.Abs())
		res.Count++
		res.Transactions = append(res.Transactions, t)
	}
	return res
}
