package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/snapshot"
	"github.com/finchat-dev/finchat/internal/store"
)

func demoRuntime() *Runtime {
	return NewRuntime(snapshot.NewAccessor(store.NewMemoryStore(), nil), nil)
}

func TestNamesCoverAllOperations(t *testing.T) {
	rt := demoRuntime()
	assert.ElementsMatch(t, []string{
		"get_balance",
		"get_spending_summary",
		"get_income_summary",
		"search_transactions",
		"get_category_spending",
		"get_recent_transactions",
		"get_accounts",
	}, rt.Names())
}

func TestCallUnknownOperation(t *testing.T) {
	_, err := demoRuntime().Call(context.Background(), "delete_everything", "u1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestGetBalance(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_balance", "", nil)
	require.NoError(t, err)
	assert.InDelta(t, 4250.33, result["checking"], 0.001)
	assert.InDelta(t, 892.48, result["credit_owed"], 0.001)
	assert.InDelta(t, 3357.85, result["net_worth"], 0.001)
}

func TestGetSpendingSummary(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_spending_summary", "", map[string]any{})
	require.NoError(t, err)

	categories, ok := result["categories"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, categories, "income")
	assert.NotContains(t, categories, "transfer")

	groceries, ok := categories["groceries"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 220.14, groceries["total"], 0.001)
	assert.Equal(t, 3, groceries["count"])
}

func TestGetIncomeSummary(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_income_summary", "", map[string]any{
		"start_date": "2026-01-01",
		"end_date":   "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result["count"])
	assert.InDelta(t, 3250.00, result["total"], 0.001)
}

func TestSearchTransactionsDefaults(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "search_transactions", "", map[string]any{})
	require.NoError(t, err)
	// Default limit caps the result at 10.
	assert.Equal(t, 10, result["count"])
}

func TestSearchTransactionsByCategory(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "search_transactions", "", map[string]any{
		"category": "groceries",
	})
	require.NoError(t, err)
	require.Equal(t, 3, result["count"])

	txns, ok := result["transactions"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, "txn_017", txns[0]["id"])
	assert.Equal(t, "2026-01-27", txns[0]["date"])
}

func TestSearchTransactionsPermissiveParams(t *testing.T) {
	rt := demoRuntime()

	// Numeric params as strings, limit as float (JSON numbers).
	result, err := rt.Call(context.Background(), "search_transactions", "", map[string]any{
		"min_amount": "0",
		"limit":      float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result["count"])

	// Unknown category is a match-nothing filter, not an error.
	result, err = rt.Call(context.Background(), "search_transactions", "", map[string]any{
		"category": "yachts",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result["count"])

	// Garbage amounts are ignored entirely.
	result, err = rt.Call(context.Background(), "search_transactions", "", map[string]any{
		"min_amount": "lots of money",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result["count"])
}

func TestGetCategorySpending(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_category_spending", "", map[string]any{
		"category": "entertainment",
	})
	require.NoError(t, err)
	assert.InDelta(t, 40.99, result["total"], 0.001)
	assert.Equal(t, 2, result["count"])
	assert.Equal(t, "entertainment", result["category"])
}

func TestGetCategorySpendingRequiresCategory(t *testing.T) {
	_, err := demoRuntime().Call(context.Background(), "get_category_spending", "", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a category")
}

func TestGetCategorySpendingUnknownCategoryIsEmpty(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_category_spending", "", map[string]any{
		"category": "submarines",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result["count"])
	assert.InDelta(t, 0.0, result["total"], 0.001)
}

func TestGetRecentTransactions(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_recent_transactions", "", map[string]any{
		"limit": float64(3),
	})
	require.NoError(t, err)
	require.Equal(t, 3, result["count"])

	txns := result["transactions"].([]map[string]any)
	assert.Equal(t, "txn_020", txns[0]["id"])
	assert.Equal(t, "txn_017", txns[1]["id"])
	assert.Equal(t, "txn_019", txns[2]["id"])
}

func TestGetAccounts(t *testing.T) {
	result, err := demoRuntime().Call(context.Background(), "get_accounts", "", nil)
	require.NoError(t, err)

	accts, ok := result["accounts"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, accts, 2)
	assert.Equal(t, "checking", accts[0]["type"])
	assert.Equal(t, "credit", accts[1]["type"])
}

func TestAuditTrail(t *testing.T) {
	rt := demoRuntime()
	ctx := context.Background()

	_, _ = rt.Call(ctx, "get_balance", "alice", nil)
	_, _ = rt.Call(ctx, "get_category_spending", "alice", map[string]any{})

	log := rt.AuditLog()
	require.Len(t, log, 2)
	assert.Equal(t, "get_balance", log[0].Tool)
	assert.Equal(t, "ok", log[0].Status)
	assert.Equal(t, "alice", log[0].UserID)
	assert.Contains(t, log[1].Status, "error")
}
