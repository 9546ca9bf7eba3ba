package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/model"
	"github.com/finchat-dev/finchat/internal/store"
)

func TestTransactionsFallsBackToDemo(t *testing.T) {
	a := NewAccessor(store.NewMemoryStore(), nil)

	txns, err := a.Transactions(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Len(t, txns, 20)

	// Empty user identifier always gets demo data.
	txns, err = a.Transactions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, txns, 20)
}

func TestTransactionsRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	a := NewAccessor(s, nil)
	ctx := context.Background()

	cached := []model.Transaction{
		{ID: "t1", Date: "2026-03-01", Amount: decimal.RequireFromString("-5.00"),
			Merchant: "Bakery", Category: model.CategoryFood, Account: "Checking"},
	}
	require.NoError(t, s.PutTransactionCache(ctx, model.TransactionCache{
		UserID:       "alice",
		Transactions: cached,
		CachedAt:     time.Now(),
	}))

	got, err := a.Transactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)

	// Returned slice is a copy; mutations never reach the store.
	got[0].Merchant = "mutated"
	again, err := a.Transactions(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Bakery", again[0].Merchant)
}

func TestAccountsFallsBackToDemo(t *testing.T) {
	s := store.NewMemoryStore()
	a := NewAccessor(s, nil)
	ctx := context.Background()

	accts, err := a.Accounts(ctx, "nobody")
	require.NoError(t, err)
	require.Len(t, accts, 2)
	assert.Equal(t, model.AccountTypeChecking, accts[0].Type)
	assert.Equal(t, model.AccountTypeCredit, accts[1].Type)

	// A connection with an empty account list still falls back.
	require.NoError(t, s.PutConnection(ctx, model.Connection{UserID: "bare"}))
	accts, err = a.Accounts(ctx, "bare")
	require.NoError(t, err)
	assert.Len(t, accts, 2)
}

func TestAccountsFromConnection(t *testing.T) {
	s := store.NewMemoryStore()
	a := NewAccessor(s, nil)
	ctx := context.Background()

	require.NoError(t, s.PutConnection(ctx, model.Connection{
		UserID: "alice",
		Accounts: []model.Account{
			{ID: "a1", Name: "Real Checking", Type: model.AccountTypeDepository,
				Balance: decimal.RequireFromString("10.00")},
		},
	}))

	accts, err := a.Accounts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.Equal(t, "Real Checking", accts[0].Name)
}

type failingStore struct {
	store.Store
}

func (failingStore) GetTransactionCache(context.Context, string) (model.TransactionCache, error) {
	return model.TransactionCache{}, errors.New("disk on fire")
}

func TestStoreFailurePropagates(t *testing.T) {
	a := NewAccessor(failingStore{store.NewMemoryStore()}, nil)
	_, err := a.Transactions(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
