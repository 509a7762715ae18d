package chat

import (
	"sync"
	"time"
)

// Moderation holds the ban set and the timeout map. Bans key on the
// connection's network origin and never expire; timeouts key on username
// and expire lazily by wall clock. Neither survives a restart.
type Moderation struct {
	mu       sync.Mutex
	banned   map[string]struct{}
	timeouts map[string]time.Time
	now      func() time.Time
}

// NewModeration creates empty moderation state.
func NewModeration() *Moderation {
	return &Moderation{
		banned:   make(map[string]struct{}),
		timeouts: make(map[string]time.Time),
		now:      time.Now,
	}
}

// IsBanned reports whether the origin is in the ban set.
func (m *Moderation) IsBanned(origin string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.banned[origin]
	return ok
}

// Ban adds the origin to the ban set. Idempotent.
func (m *Moderation) Ban(origin string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banned[origin] = struct{}{}
}

// SetTimeout mutes the username for the given number of seconds,
// overwriting any existing expiry (last write wins, not cumulative).
func (m *Moderation) SetTimeout(username string, seconds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts[username] = m.now().Add(time.Duration(seconds) * time.Second)
}

// RemainingSeconds returns the whole seconds left on the username's
// timeout, rounded up. Zero means not timed out.
func (m *Moderation) RemainingSeconds(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.timeouts[username]
	if !ok {
		return 0
	}
	left := expiry.Sub(m.now())
	if left <= 0 {
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}

// PruneExpired drops timeout entries whose expiry has passed and returns
// how many were removed. Expired entries are already inert; this only
// bounds map growth.
func (m *Moderation) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	pruned := 0
	for username, expiry := range m.timeouts {
		if !expiry.After(now) {
			delete(m.timeouts, username)
			pruned++
		}
	}
	return pruned
}

// Counts returns the ban set size and the number of stored timeout
// entries, expired or not.
func (m *Moderation) Counts() (bans, timeouts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.banned), len(m.timeouts)
}
