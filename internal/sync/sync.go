// Package sync owns the link and refresh flows: exchanging link tokens for
// credentials, pulling fresh data from the provider, and updating the
// per-user cache. A failed fetch never touches previously cached state.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/notify"
	"github.com/finchat-dev/finchat/internal/provider"
	"github.com/finchat-dev/finchat/internal/store"
)

// ErrNotLinked is returned when a refresh is requested for a user with no
// stored connection.
var ErrNotLinked = errors.New("user has no bank connection")

// Service coordinates provider fetches with the store.
type Service struct {
	provider provider.Client
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a sync Service. A nil notifier falls back to logging;
// a nil logger falls back to slog.Default().
func NewService(p provider.Client, s store.Store, n notify.Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if n == nil {
		n = notify.LogNotifier{Log: log}
	}
	return &Service{provider: p, store: s, notifier: n, log: log, now: time.Now}
}

// Link exchanges a public token from a completed link flow, stores the
// resulting connection, and runs an initial refresh.
func (s *Service) Link(ctx context.Context, userID, publicToken string) error {
	creds, err := s.provider.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return fmt.Errorf("linking user %s: %w", userID, err)
	}

	conn := model.Connection{
		UserID:      userID,
		AccessToken: creds.AccessToken,
		ItemID:      creds.ItemID,
		ConnectedAt: s.now(),
	}
	if err := s.store.PutConnection(ctx, conn); err != nil {
		return fmt.Errorf("storing connection for user %s: %w", userID, err)
	}

	s.log.Info("bank connection linked", "user_id", userID, "item_id", creds.ItemID)
	return s.Refresh(ctx, userID)
}

// Refresh fetches accounts and transactions for the user's connection and
// overwrites the cache. The two fetches run concurrently; any failure aborts
// the whole refresh before anything is written.
func (s *Service) Refresh(ctx context.Context, userID string) error {
	conn, err := s.store.GetConnection(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotLinked
	}
	if err != nil {
		return fmt.Errorf("loading connection for user %s: %w", userID, err)
	}

	var (
		accounts     []model.Account
		transactions []model.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		accounts, ferr = s.provider.FetchAccounts(gctx, conn.AccessToken)
		return ferr
	})
	g.Go(func() error {
		var ferr error
		transactions, ferr = s.provider.FetchTransactions(gctx, conn.AccessToken)
		return ferr
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refreshing user %s: %w", userID, err)
	}

	newCount := s.countNew(ctx, userID, transactions)

	conn.Accounts = accounts
	if err := s.store.PutConnection(ctx, conn); err != nil {
		return fmt.Errorf("storing accounts for user %s: %w", userID, err)
	}
	if err := s.store.PutTransactionCache(ctx, model.TransactionCache{
		UserID:       userID,
		Transactions: transactions,
		CachedAt:     s.now(),
	}); err != nil {
		return fmt.Errorf("storing transaction cache for user %s: %w", userID, err)
	}

	s.log.Info("sync complete",
		"user_id", userID,
		"accounts", len(accounts),
		"transactions", len(transactions),
		"new", newCount)

	if newCount > 0 {
		if err := s.notifier.TransactionsSynced(ctx, userID, newCount); err != nil {
			// Notification delivery is best effort; the sync itself succeeded.
			s.log.Warn("sync notification failed", "user_id", userID, "error", err)
		}
	}
	return nil
}

// countNew reports how many fetched transactions were absent from the
// previous cache. A missing cache counts everything as new.
func (s *Service) countNew(ctx context.Context, userID string, fetched []model.Transaction) int {
	prev, err := s.store.GetTransactionCache(ctx, userID)
	if err != nil {
		return len(fetched)
	}

	seen := make(map[string]bool, len(prev.Transactions))
	for _, t := range prev.Transactions {
		seen[t.ID] = true
	}

	count := 0
	for _, t := range fetched {
		if !seen[t.ID] {
			count++
		}
	}
	return count
}
