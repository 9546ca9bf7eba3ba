// Package store defines the keyed persistence abstraction behind the
// accessor: one get/put pair per entity type, keyed by user. The query layer
// never sees a store; it only ever receives resolved snapshots.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/finchat-dev/finchat/internal/model"
)

// ErrNotFound distinguishes an absent entity from an I/O failure. Callers
// that treat "no data" as a fallback condition branch on it.
var ErrNotFound = errors.New("not found")

// Store persists per-user state. Implementations must be safe for
// concurrent use.
type Store interface {
	GetConnection(ctx context.Context, userID string) (model.Connection, error)
	PutConnection(ctx context.Context, conn model.Connection) error

	GetTransactionCache(ctx context.Context, userID string) (model.TransactionCache, error)
	PutTransactionCache(ctx context.Context, cache model.TransactionCache) error

	GetChatHistory(ctx context.Context, userID string) ([]model.ChatMessage, error)
	PutChatHistory(ctx context.Context, userID string, msgs []model.ChatMessage) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open constructs a store for the named backend. The path is the data
// directory for the file backend and the database file for sqlite; memory
// ignores it.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
