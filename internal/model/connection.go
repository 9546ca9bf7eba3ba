package model

import "time"

// Connection holds a user's link to the bank-data provider.
//
// There is deliberately no disconnect path: connections are created on a
// successful link and only ever overwritten by a later link.
type Connection struct {
	UserID      string    `json:"userId"`
	AccessToken string    `json:"accessToken"`
	ItemID      string    `json:"itemId"`
	Accounts    []Account `json:"accounts,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// TransactionCache is the most recently synced transaction set for a user.
// An absent cache means queries fall back to the demo dataset.
type TransactionCache struct {
	UserID       string        `json:"userId"`
	Transactions []Transaction `json:"transactions"`
	CachedAt     time.Time     `json:"cachedAt"`
}

// ChatMessage is one turn in a user's conversation history.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "model"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
