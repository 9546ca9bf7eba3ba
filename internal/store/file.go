package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/finchat-dev/finchat/internal/model"
)

// FileStore persists each entity as a JSON file under
// <dir>/users/<userID>/. Writes go through a temp file and rename so a
// crashed write never leaves a truncated entity behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file store rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

const (
	connectionFile = "connection.json"
	cacheFile      = "transactions.json"
	historyFile    = "history.json"
)

func (s *FileStore) GetConnection(_ context.Context, userID string) (model.Connection, error) {
	var conn model.Connection
	if err := s.readJSON(userID, connectionFile, &conn); err != nil {
		return model.Connection{}, err
	}
	return conn, nil
}

func (s *FileStore) PutConnection(_ context.Context, conn model.Connection) error {
	return s.writeJSON(conn.UserID, connectionFile, conn)
}

func (s *FileStore) GetTransactionCache(_ context.Context, userID string) (model.TransactionCache, error) {
	var cache model.TransactionCache
	if err := s.readJSON(userID, cacheFile, &cache); err != nil {
		return model.TransactionCache{}, err
	}
	return cache, nil
}

func (s *FileStore) PutTransactionCache(_ context.Context, cache model.TransactionCache) error {
	return s.writeJSON(cache.UserID, cacheFile, cache)
}

func (s *FileStore) GetChatHistory(_ context.Context, userID string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	if err := s.readJSON(userID, historyFile, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *FileStore) PutChatHistory(_ context.Context, userID string, msgs []model.ChatMessage) error {
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return s.writeJSON(userID, historyFile, msgs)
}

func (s *FileStore) readJSON(userID, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.entityPath(userID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s for user %s: %w", name, userID, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s for user %s: %w", name, userID, err)
	}
	return nil
}

func (s *FileStore) writeJSON(userID, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.entityPath(userID, name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating user dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}

	tmp := s.entityPath(userID, name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.entityPath(userID, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) entityPath(userID, name string) string {
	return filepath.Join(s.dir, "users", sanitizeUserID(userID), name)
}

// sanitizeUserID keeps user identifiers from escaping the data directory.
func sanitizeUserID(userID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, userID)
}
