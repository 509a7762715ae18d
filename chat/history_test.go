package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lobbychat/lobby-chat-api/models"
)

func TestMessageLogEvictsOldest(t *testing.T) {
	log := NewMessageLog(MaxHistory)

	for i := 1; i <= 51; i++ {
		log.Append(models.ChatMessage{ID: fmt.Sprintf("msg-%d", i), Text: fmt.Sprintf("hello %d", i)})
	}

	snap := log.Snapshot()
	assert.Len(t, snap, MaxHistory)
	assert.Equal(t, "msg-2", snap[0].ID, "after the 51st append the 2nd message is the oldest")
	assert.Equal(t, "msg-51", snap[len(snap)-1].ID)

	for _, msg := range snap {
		assert.NotEqual(t, "msg-1", msg.ID, "the 1st message must have been evicted")
	}
}

func TestMessageLogDeleteByID(t *testing.T) {
	log := NewMessageLog(MaxHistory)
	log.Append(models.ChatMessage{ID: "a"})
	log.Append(models.ChatMessage{ID: "b"})
	log.Append(models.ChatMessage{ID: "c"})

	assert.True(t, log.DeleteByID("b"))
	assert.False(t, log.DeleteByID("b"), "second delete finds nothing")
	assert.False(t, log.DeleteByID("nope"))

	snap := log.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "c", snap[1].ID)
}

func TestMessageLogSnapshotIsACopy(t *testing.T) {
	log := NewMessageLog(MaxHistory)
	log.Append(models.ChatMessage{ID: "a", Text: "original"})

	snap := log.Snapshot()
	snap[0].Text = "mutated"

	assert.Equal(t, "original", log.Snapshot()[0].Text)
}
