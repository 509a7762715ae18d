package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lobbychat/lobby-chat-api/models"
)

func TestIsOnlineIsCaseInsensitive(t *testing.T) {
	r := NewSessionRegistry()
	r.Admit("conn-1", models.Session{Username: "Alice", Role: models.RoleUser})

	assert.True(t, r.IsOnline("alice"))
	assert.False(t, r.IsOnline("bob"))
}

func TestRemoveReturnsSession(t *testing.T) {
	r := NewSessionRegistry()
	r.Admit("conn-1", models.Session{Username: "Alice", Role: models.RoleUser, Origin: "203.0.113.5"})

	sess, ok := r.Remove("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "Alice", sess.Username)
	assert.Equal(t, "203.0.113.5", sess.Origin)

	_, ok = r.Remove("conn-1")
	assert.False(t, ok, "second remove is a no-op")
	assert.False(t, r.IsOnline("alice"))
}

func TestListActive(t *testing.T) {
	r := NewSessionRegistry()
	assert.Empty(t, r.ListActive())

	r.Admit("conn-1", models.Session{Username: "Alice", Role: models.RoleUser})
	r.Admit("conn-2", models.Session{Username: "owner", Role: models.RoleOwner})

	users := r.ListActive()
	assert.Len(t, users, 2)
	assert.Equal(t, 2, r.Len())

	names := map[string]string{}
	for _, u := range users {
		names[u.Username] = u.Role
	}
	assert.Equal(t, models.RoleUser, names["Alice"])
	assert.Equal(t, models.RoleOwner, names["owner"])
}
