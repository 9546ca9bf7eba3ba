// Package history models conversation history as a bounded ordered log:
// capacity N, oldest evicted. It is deliberately outside the query engine's
// contract; the agent loads and persists it around each turn.
package history

import "github.com/finchat-dev/finchat/internal/model"

// DefaultCapacity bounds a conversation when no capacity is configured.
const DefaultCapacity = 20

// Log is a bounded, ordered message log.
type Log struct {
	capacity int
	msgs     []model.ChatMessage
}

// NewLog creates an empty log. Capacity values below one fall back to
// DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// FromMessages creates a log seeded with msgs, evicting from the front if
// msgs already exceeds capacity.
func FromMessages(capacity int, msgs []model.ChatMessage) *Log {
	l := NewLog(capacity)
	for _, m := range msgs {
		l.Append(m)
	}
	return l
}

// Append adds a message, evicting the oldest when the log is full.
func (l *Log) Append(msg model.ChatMessage) {
	l.msgs = append(l.msgs, msg)
	if len(l.msgs) > l.capacity {
		l.msgs = l.msgs[len(l.msgs)-l.capacity:]
	}
}

// Messages returns a copy of the log contents, oldest first.
func (l *Log) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len returns the number of retained messages.
func (l *Log) Len() int {
	return len(l.msgs)
}
