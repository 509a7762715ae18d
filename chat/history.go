package chat

import (
	"sync"

	"github.com/lobbychat/lobby-chat-api/models"
)

// MaxHistory is the number of chat messages retained for late joiners.
const MaxHistory = 50

// MessageLog is the bounded, ordered chat history shared by every session.
// It carries its own lock so the broadcast path and the owner delete path
// can touch it without holding the hub lock.
type MessageLog struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	max      int
}

// NewMessageLog creates an empty log capped at max entries.
func NewMessageLog(max int) *MessageLog {
	return &MessageLog{max: max}
}

// Append adds a message to the tail, evicting the oldest entry once the
// cap is exceeded.
func (l *MessageLog) Append(msg models.ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
	if len(l.messages) > l.max {
		l.messages = l.messages[1:]
	}
}

// DeleteByID removes the message with the given id and reports whether
// anything was removed.
func (l *MessageLog) DeleteByID(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, msg := range l.messages {
		if msg.ID == id {
			l.messages = append(l.messages[:i], l.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current history, oldest first.
func (l *MessageLog) Snapshot() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	msgs := make([]models.ChatMessage, len(l.messages))
	copy(msgs, l.messages)
	return msgs
}

// Len returns the current history length.
func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
