package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/model"
)

func msg(content string) model.ChatMessage {
	return model.ChatMessage{Role: "user", Content: content}
}

func TestAppendWithinCapacity(t *testing.T) {
	l := NewLog(3)
	l.Append(msg("a"))
	l.Append(msg("b"))

	got := l.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Content)
	assert.Equal(t, "b", got[1].Content)
}

func TestAppendEvictsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Append(msg(fmt.Sprintf("m%d", i)))
	}

	got := l.Messages()
	require.Len(t, got, 3)
	assert.Equal(t, "m3", got[0].Content)
	assert.Equal(t, "m5", got[2].Content)
}

func TestFromMessagesTruncates(t *testing.T) {
	var msgs []model.ChatMessage
	for i := 1; i <= 25; i++ {
		msgs = append(msgs, msg(fmt.Sprintf("m%d", i)))
	}

	l := FromMessages(DefaultCapacity, msgs)
	assert.Equal(t, DefaultCapacity, l.Len())
	assert.Equal(t, "m6", l.Messages()[0].Content)
	assert.Equal(t, "m25", l.Messages()[DefaultCapacity-1].Content)
}

func TestZeroCapacityFallsBack(t *testing.T) {
	l := NewLog(0)
	for i := 0; i < 30; i++ {
		l.Append(msg("x"))
	}
	assert.Equal(t, DefaultCapacity, l.Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := NewLog(3)
	l.Append(msg("original"))

	got := l.Messages()
	got[0].Content = "mutated"
	assert.Equal(t, "original", l.Messages()[0].Content)
}
