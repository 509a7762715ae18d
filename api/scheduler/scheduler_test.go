package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lobbychat/lobby-chat-api/chat"
)

func TestPruneTimeoutsJob(t *testing.T) {
	moderation := chat.NewModeration()
	moderation.SetTimeout("expired", 0)
	moderation.SetTimeout("active", 60)

	s := NewScheduler(moderation)
	s.pruneTimeouts()

	_, timeouts := moderation.Counts()
	assert.Equal(t, 1, timeouts, "only the expired entry is swept")
	assert.Equal(t, 60, moderation.RemainingSeconds("active"))
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(chat.NewModeration())
	s.Start()
	s.Stop()
}
