package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMessageRoundTrip(t *testing.T) {
	msg := NewSyncMessage("alice", 7)
	assert.Equal(t, "transactions_synced", msg.Type)
	assert.False(t, msg.SyncedAt.IsZero())

	data, err := msg.ToJSON()
	require.NoError(t, err)

	got, err := SyncMessageFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, 7, got.NewTransactions)
	assert.True(t, msg.SyncedAt.Equal(got.SyncedAt))
}
