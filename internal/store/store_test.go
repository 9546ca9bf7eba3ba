package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/model"
)

// Every backend must satisfy the same contract, so the suite runs against
// all of them.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "finchat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir()),
		"sqlite": sqliteStore,
	}
}

func sampleCache(userID string) model.TransactionCache {
	return model.TransactionCache{
		UserID: userID,
		Transactions: []model.Transaction{
			{
				ID:       "txn_abc",
				Date:     "2026-02-03",
				Amount:   decimal.RequireFromString("-12.34"),
				Merchant: "Corner Store",
				Category: model.CategoryGroceries,
				Account:  "Everyday Checking",
			},
			{
				ID:       "txn_def",
				Date:     "2026-02-04",
				Amount:   decimal.RequireFromString("1200.00"),
				Merchant: "Payroll",
				Category: model.CategoryIncome,
				Account:  "Everyday Checking",
				Pending:  true,
			},
		},
		CachedAt: time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestConnectionRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.GetConnection(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound)

			conn := model.Connection{
				UserID:      "u1",
				AccessToken: "access-sandbox-123",
				ItemID:      "item-1",
				Accounts: []model.Account{
					{ID: "a1", Name: "Checking", Type: model.AccountTypeChecking,
						Balance: decimal.RequireFromString("100.50")},
				},
				ConnectedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			require.NoError(t, s.PutConnection(ctx, conn))

			got, err := s.GetConnection(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, conn.AccessToken, got.AccessToken)
			assert.Equal(t, conn.ItemID, got.ItemID)
			require.Len(t, got.Accounts, 1)
			assert.True(t, got.Accounts[0].Balance.Equal(conn.Accounts[0].Balance))

			// Overwrite wins.
			conn.AccessToken = "access-sandbox-456"
			require.NoError(t, s.PutConnection(ctx, conn))
			got, err = s.GetConnection(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "access-sandbox-456", got.AccessToken)
		})
	}
}

func TestTransactionCacheRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.GetTransactionCache(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound)

			cache := sampleCache("u1")
			require.NoError(t, s.PutTransactionCache(ctx, cache))

			got, err := s.GetTransactionCache(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, got.Transactions, 2)
			assert.Equal(t, "txn_abc", got.Transactions[0].ID)
			assert.True(t, got.Transactions[0].Amount.Equal(decimal.RequireFromString("-12.34")))
			assert.True(t, got.Transactions[1].Pending)

			// Mutating the returned slice must not affect stored state.
			got.Transactions[0].Merchant = "mutated"
			again, err := s.GetTransactionCache(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "Corner Store", again.Transactions[0].Merchant)
		})
	}
}

func TestChatHistoryRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.GetChatHistory(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound)

			msgs := []model.ChatMessage{
				{Role: "user", Content: "how much did I spend?", Timestamp: time.Now().UTC().Truncate(time.Second)},
				{Role: "model", Content: "about $40", Timestamp: time.Now().UTC().Truncate(time.Second)},
			}
			require.NoError(t, s.PutChatHistory(ctx, "u1", msgs))

			got, err := s.GetChatHistory(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "user", got[0].Role)
			assert.Equal(t, "about $40", got[1].Content)
		})
	}
}

func TestUsersAreIsolated(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.PutTransactionCache(ctx, sampleCache("alice")))

			_, err := s.GetTransactionCache(ctx, "bob")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestOpenBackends(t *testing.T) {
	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(BackendFile, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(BackendSQLite, filepath.Join(t.TempDir(), "f.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = Open("dynamo", "")
	assert.Error(t, err)
}

func TestFileStoreSanitizesUserID(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	cache := sampleCache("../evil/../user")
	require.NoError(t, s.PutTransactionCache(ctx, cache))

	got, err := s.GetTransactionCache(ctx, "../evil/../user")
	require.NoError(t, err)
	assert.Len(t, got.Transactions, 2)
}
