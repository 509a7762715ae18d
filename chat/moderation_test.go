package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBanIsIdempotent(t *testing.T) {
	m := NewModeration()

	assert.False(t, m.IsBanned("198.51.100.7"))
	m.Ban("198.51.100.7")
	m.Ban("198.51.100.7")
	assert.True(t, m.IsBanned("198.51.100.7"))

	bans, _ := m.Counts()
	assert.Equal(t, 1, bans)
}

func TestTimeoutLastWriteWins(t *testing.T) {
	m := NewModeration()
	now := time.Now()
	m.now = func() time.Time { return now }

	m.SetTimeout("alice", 300)
	m.SetTimeout("alice", 5)

	assert.Equal(t, 5, m.RemainingSeconds("alice"), "a new timeout replaces the prior expiry, not cumulative")
}

func TestRemainingSecondsExpiresLazily(t *testing.T) {
	m := NewModeration()
	now := time.Now()
	m.now = func() time.Time { return now }

	assert.Equal(t, 0, m.RemainingSeconds("alice"), "never timed out")

	m.SetTimeout("alice", 10)
	assert.Equal(t, 10, m.RemainingSeconds("alice"))

	now = now.Add(9500 * time.Millisecond)
	assert.Equal(t, 1, m.RemainingSeconds("alice"), "partial seconds round up")

	now = now.Add(time.Second)
	assert.Equal(t, 0, m.RemainingSeconds("alice"), "inert once the wall clock passes expiry")
}

func TestPruneExpired(t *testing.T) {
	m := NewModeration()
	now := time.Now()
	m.now = func() time.Time { return now }

	m.SetTimeout("alice", 5)
	m.SetTimeout("bob", 120)

	now = now.Add(10 * time.Second)
	assert.Equal(t, 1, m.PruneExpired())

	_, timeouts := m.Counts()
	assert.Equal(t, 1, timeouts)
	assert.Equal(t, 110, m.RemainingSeconds("bob"), "live entries survive the sweep")
	assert.Equal(t, 0, m.PruneExpired(), "nothing left to prune")
}
