package notify

import (
	"encoding/json"
	"time"
)

// SyncMessage is the wire payload published after a sync with new
// transactions.
type SyncMessage struct {
	Type            string    `json:"type"`
	UserID          string    `json:"user_id"`
	NewTransactions int       `json:"new_transactions"`
	SyncedAt        time.Time `json:"synced_at"`
}

// NewSyncMessage creates a SyncMessage stamped with the current time.
func NewSyncMessage(userID string, newCount int) SyncMessage {
	return SyncMessage{
		Type:            "transactions_synced",
		UserID:          userID,
		NewTransactions: newCount,
		SyncedAt:        time.Now().UTC(),
	}
}

// ToJSON serializes the message.
func (m SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON deserializes a message, for consumers.
func SyncMessageFromJSON(data []byte) (SyncMessage, error) {
	var m SyncMessage
	err := json.Unmarshal(data, &m)
	return m, err
}
