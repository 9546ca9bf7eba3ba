package store

import (
	"context"
	"sync"

	"github.com/finchat-dev/finchat/internal/model"
)

// MemoryStore is a map-backed Store. It is the default for tests and demo
// sessions; nothing survives process exit.
type MemoryStore struct {
	mu          sync.RWMutex
	connections map[string]model.Connection
	caches      map[string]model.TransactionCache
	histories   map[string][]model.ChatMessage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		connections: make(map[string]model.Connection),
		caches:      make(map[string]model.TransactionCache),
		histories:   make(map[string][]model.ChatMessage),
	}
}

func (s *MemoryStore) GetConnection(_ context.Context, userID string) (model.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conn, ok := s.connections[userID]
	if !ok {
		return model.Connection{}, ErrNotFound
	}
	return conn, nil
}

func (s *MemoryStore) PutConnection(_ context.Context, conn model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[conn.UserID] = conn
	return nil
}

func (s *MemoryStore) GetTransactionCache(_ context.Context, userID string) (model.TransactionCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cache, ok := s.caches[userID]
	if !ok {
		return model.TransactionCache{}, ErrNotFound
	}
	out := cache
	out.Transactions = make([]model.Transaction, len(cache.Transactions))
	copy(out.Transactions, cache.Transactions)
	return out, nil
}

func (s *MemoryStore) PutTransactionCache(_ context.Context, cache model.TransactionCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := cache
	stored.Transactions = make([]model.Transaction, len(cache.Transactions))
	copy(stored.Transactions, cache.Transactions)
	s.caches[cache.UserID] = stored
	return nil
}

func (s *MemoryStore) GetChatHistory(_ context.Context, userID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.histories[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) PutChatHistory(_ context.Context, userID string, msgs []model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.ChatMessage, len(msgs))
	copy(stored, msgs)
	s.histories[userID] = stored
	return nil
}
