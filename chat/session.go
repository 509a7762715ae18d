package chat

import (
	"strings"

	"github.com/lobbychat/lobby-chat-api/models"
)

// SessionRegistry maps connection ids to live sessions. It carries no lock
// of its own: the hub serializes every access, which is also what makes
// the isOnline-then-admit login sequence atomic.
type SessionRegistry struct {
	sessions map[string]models.Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]models.Session)}
}

// IsOnline reports whether any active session holds the username,
// case-insensitively.
func (r *SessionRegistry) IsOnline(id string) bool {
	for _, s := range r.sessions {
		if strings.ToLower(s.Username) == id {
			return true
		}
	}
	return false
}

// Admit inserts a session keyed by connection id. The caller must have
// already verified the username is not online.
func (r *SessionRegistry) Admit(connID string, s models.Session) {
	r.sessions[connID] = s
}

// Get returns the session for a connection id.
func (r *SessionRegistry) Get(connID string) (models.Session, bool) {
	s, ok := r.sessions[connID]
	return s, ok
}

// Remove deletes and returns the session if present.
func (r *SessionRegistry) Remove(connID string) (models.Session, bool) {
	s, ok := r.sessions[connID]
	if ok {
		delete(r.sessions, connID)
	}
	return s, ok
}

// ListActive snapshots the presence list for an update_users broadcast.
func (r *SessionRegistry) ListActive() []models.UserInfo {
	users := make([]models.UserInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		users = append(users, models.UserInfo{Username: s.Username, Role: s.Role})
	}
	return users
}

// Len returns the number of active sessions.
func (r *SessionRegistry) Len() int {
	return len(r.sessions)
}
