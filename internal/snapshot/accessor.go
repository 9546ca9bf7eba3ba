// Package snapshot resolves the point-in-time transaction and account sets
// the query engine runs over. Resolution never has side effects: a user with
// a synced cache gets a copy of it; everyone else gets the canned demo data.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finchat-dev/finchat/internal/demo"
	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/store"
)

// Accessor resolves per-user snapshots from a store, falling back to the
// demo dataset.
type Accessor struct {
	store store.Store
	log   *slog.Logger
}

// NewAccessor creates an Accessor over the given store. A nil logger
// defaults to slog.Default().
func NewAccessor(s store.Store, log *slog.Logger) *Accessor {
	if log == nil {
		log = slog.Default()
	}
	return &Accessor{store: s, log: log}
}

// Transactions returns a copy of the user's cached transaction set, or the
// canned demo set when no cache exists. Store failures other than absence
// propagate.
func (a *Accessor) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if userID == "" {
		return demo.Transactions(), nil
	}

	cache, err := a.store.GetTransactionCache(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		a.log.Debug("no transaction cache, serving demo data", "user_id", userID)
		return demo.Transactions(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving transactions for user %s: %w", userID, err)
	}

	txns := make([]model.Transaction, len(cache.Transactions))
	copy(txns, cache.Transactions)
	return txns, nil
}

// Accounts returns a copy of the account list stored on the user's
// connection, or the two canned demo accounts when no connection exists or
// the connection carries no accounts.
func (a *Accessor) Accounts(ctx context.Context, userID string) ([]model.Account, error) {
	if userID == "" {
		return demo.Accounts(), nil
	}

	conn, err := a.store.GetConnection(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		a.log.Debug("no connection, serving demo accounts", "user_id", userID)
		return demo.Accounts(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving accounts for user %s: %w", userID, err)
	}
	if len(conn.Accounts) == 0 {
		return demo.Accounts(), nil
	}

	accts := make([]model.Account, len(conn.Accounts))
	copy(accts, conn.Accounts)
	return accts, nil
}
