package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/finchat-dev/finchat/internal/model"
)

// SQLiteStore backs the Store interface with a single sqlite database. Each
// entity table is a plain keyed row (user_id -> JSON document); the query
// layer never reads this schema, so there is nothing relational to model.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS connections (
	user_id TEXT PRIMARY KEY,
	data    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transaction_caches (
	user_id TEXT PRIMARY KEY,
	data    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_histories (
	user_id TEXT PRIMARY KEY,
	data    TEXT NOT NULL
);
`

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// ensures the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetConnection(ctx context.Context, userID string) (model.Connection, error) {
	var conn model.Connection
	if err := s.get(ctx, "connections", userID, &conn); err != nil {
		return model.Connection{}, err
	}
	return conn, nil
}

func (s *SQLiteStore) PutConnection(ctx context.Context, conn model.Connection) error {
	return s.put(ctx, "connections", conn.UserID, conn)
}

func (s *SQLiteStore) GetTransactionCache(ctx context.Context, userID string) (model.TransactionCache, error) {
	var cache model.TransactionCache
	if err := s.get(ctx, "transaction_caches", userID, &cache); err != nil {
		return model.TransactionCache{}, err
	}
	return cache, nil
}

func (s *SQLiteStore) PutTransactionCache(ctx context.Context, cache model.TransactionCache) error {
	return s.put(ctx, "transaction_caches", cache.UserID, cache)
}

func (s *SQLiteStore) GetChatHistory(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := s.get(ctx, "chat_histories", userID, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *SQLiteStore) PutChatHistory(ctx context.Context, userID string, msgs []model.ChatMessage) error {
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return s.put(ctx, "chat_histories", userID, msgs)
}

func (s *SQLiteStore) get(ctx context.Context, table, userID string, v any) error {
	var data string
	query := fmt.Sprintf("SELECT data FROM %s WHERE user_id = ?", table)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("querying %s for user %s: %w", table, userID, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("parsing %s row for user %s: %w", table, userID, err)
	}
	return nil
}

func (s *SQLiteStore) put(ctx context.Context, table, userID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s row: %w", table, err)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, data) VALUES (?, ?) ON CONFLICT(user_id) DO UPDATE SET data = excluded.data",
		table,
	)
	if _, err := s.db.ExecContext(ctx, query, userID, string(data)); err != nil {
		return fmt.Errorf("upserting %s for user %s: %w", table, userID, err)
	}
	return nil
}
