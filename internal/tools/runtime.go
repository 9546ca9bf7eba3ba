// Package tools exposes the query engine as the fixed set of named
// operations the conversation agent may call. Parameters arrive as
// permissive map[string]any payloads straight from the model; out-of-domain
// values match nothing rather than erroring.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/finchat-dev/finchat/internal/audit"
	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/query"
	"github.com/finchat-dev/finchat/internal/snapshot"
)

// DefaultLimit is the transaction count returned when the model omits limit.
const DefaultLimit = 10

// Handler executes one named operation for a user.
type Handler func(ctx context.Context, userID string, params map[string]any) (map[string]any, error)

// Runtime resolves snapshots through the accessor and dispatches the named
// operations. The user identifier always comes from the caller, never from
// the model's parameters.
type Runtime struct {
	accessor *snapshot.Accessor
	handlers map[string]Handler
	log      *slog.Logger
	auditLog []audit.Entry
}

// NewRuntime creates a Runtime over the accessor and registers every
// operation.
func NewRuntime(accessor *snapshot.Accessor, log *slog.Logger) *Runtime {
	if log == nil {
		log = slog.Default()
	}
	rt := &Runtime{
		accessor: accessor,
		handlers: make(map[string]Handler),
		log:      log,
	}
	rt.register("get_balance", rt.getBalance)
	rt.register("get_spending_summary", rt.getSpendingSummary)
	rt.register("get_income_summary", rt.getIncomeSummary)
	rt.register("search_transactions", rt.searchTransactions)
	rt.register("get_category_spending", rt.getCategorySpending)
	rt.register("get_recent_transactions", rt.getRecentTransactions)
	rt.register("get_accounts", rt.getAccounts)
	return rt
}

func (rt *Runtime) register(name string, h Handler) {
	rt.handlers[name] = h
}

// Names returns the registered operation names.
func (rt *Runtime) Names() []string {
	names := make([]string, 0, len(rt.handlers))
	for name := range rt.handlers {
		names = append(names, name)
	}
	return names
}

// Call dispatches a named operation and records it in the audit trail.
func (rt *Runtime) Call(ctx context.Context, name, userID string, params map[string]any) (map[string]any, error) {
	h, ok := rt.handlers[name]
	if !ok {
		return nil, errors.New("unknown operation: " + name)
	}

	result, err := h(ctx, userID, params)

	status := "ok"
	if err != nil {
		status = "error: " + err.Error()
	}
	paramsJSON, _ := json.Marshal(params)
	rt.auditLog = append(rt.auditLog, audit.Entry{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Tool:      name,
		Params:    string(paramsJSON),
		Status:    status,
	})
	rt.log.Debug("tool call", "tool", name, "user_id", userID, "status", status)

	return result, err
}

// AuditLog returns the tool invocations recorded so far.
func (rt *Runtime) AuditLog() []audit.Entry {
	return rt.auditLog
}

// --- Operations ---

func (rt *Runtime) getBalance(ctx context.Context, userID string, _ map[string]any) (map[string]any, error) {
	accts, err := rt.accessor.Accounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	b := query.TotalBalance(accts)
	return map[string]any{
		"checking":    decToFloat(b.Checking),
		"credit_owed": decToFloat(b.CreditOwed),
		"net_worth":   decToFloat(b.NetWorth),
	}, nil
}

func (rt *Runtime) getSpendingSummary(ctx context.Context, userID string, params map[string]any) (map[string]any, error) {
	txns, err := rt.accessor.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := query.SpendingSummary(txns, stringParam(params, "start_date"), stringParam(params, "end_date"))

	categories := make(map[string]any, len(summary))
	var total float64
	for cat, ct := range summary {
		categories[string(cat)] = map[string]any{
			"total": decToFloat(ct.Total),
			"count": ct.Count,
		}
		total += decToFloat(ct.Total)
	}
	return map[string]any{"categories": categories, "total": total}, nil
}

func (rt *Runtime) getIncomeSummary(ctx context.Context, userID string, params map[string]any) (map[string]any, error) {
	txns, err := rt.accessor.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := query.IncomeSummary(txns, stringParam(params, "start_date"), stringParam(params, "end_date"))
	return resultToMap(res), nil
}

func (rt *Runtime) searchTransactions(ctx context.Context, userID string, params map[string]any) (map[string]any, error) {
	txns, err := rt.accessor.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	criteria := query.Criteria{
		Category:  stringParam(params, "category"),
		Merchant:  stringParam(params, "merchant"),
		StartDate: stringParam(params, "start_date"),
		EndDate:   stringParam(params, "end_date"),
		MinAmount: decimalParam(params, "min_amount"),
		MaxAmount: decimalParam(params, "max_amount"),
		Account:   stringParam(params, "account"),
		Limit:     intParamDefault(params, "limit", DefaultLimit),
	}

	matched := query.Filter(txns, criteria)
	return map[string]any{
		"count":        len(matched),
		"transactions": transactionsToMaps(matched),
	}, nil
}

func (rt *Runtime) getCategorySpending(ctx context.Context, userID string, params map[string]any) (map[string]any, error) {
	category := stringParam(params, "category")
	if category == "" {
		return nil, errors.New("get_category_spending requires a category")
	}

	txns, err := rt.accessor.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := query.CategorySpending(txns, category)
	out := resultToMap(res)
	out["category"] = category
	return out, nil
}

func (rt *Runtime) getRecentTransactions(ctx context.Context, userID string, params map[string]any) (map[string]any, error) {
	txns, err := rt.accessor.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := query.Recent(txns, intParamDefault(params, "limit", DefaultLimit))
	return map[string]any{
		"count":        len(recent),
		"transactions": transactionsToMaps(recent),
	}, nil
}

func (rt *Runtime) getAccounts(ctx context.Context, userID string, _ map[string]any) (map[string]any, error) {
	accts, err := rt.accessor.Accounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, len(accts))
	for i, a := range accts {
		out[i] = accountToMap(a)
	}
	return map[string]any{"accounts": out}, nil
}

// --- Result shaping ---

func resultToMap(res query.Result) map[string]any {
	return map[string]any{
		"total":        decToFloat(res.Total),
		"count":        res.Count,
		"transactions": transactionsToMaps(res.Transactions),
	}
}

func transactionsToMaps(txns []model.Transaction) []map[string]any {
	out := make([]map[string]any, len(txns))
	for i, t := range txns {
		out[i] = transactionToMap(t)
	}
	return out
}

func transactionToMap(t model.Transaction) map[string]any {
	m := map[string]any{
		"id":       t.ID,
		"date":     t.Date,
		"amount":   decToFloat(t.Amount),
		"merchant": t.Merchant,
		"category": string(t.Category),
		"account":  t.Account,
	}
	if t.Pending {
		m["pending"] = true
	}
	return m
}

func accountToMap(a model.Account) map[string]any {
	m := map[string]any{
		"id":      a.ID,
		"name":    a.Name,
		"type":    string(a.Type),
		"balance": decToFloat(a.Balance),
	}
	if a.AvailableBalance != nil {
		m["available_balance"] = decToFloat(*a.AvailableBalance)
	}
	if a.Institution != "" {
		m["institution"] = a.Institution
	}
	return m
}
