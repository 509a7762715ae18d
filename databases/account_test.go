package databases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobbychat/lobby-chat-api/models"
)

func newTestStore(t *testing.T) (AccountDatabase, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	db := NewAccountDatabase(path, "ownerpw")
	require.NoError(t, db.Load())
	return db, path
}

func TestLoadSeedsOwnerAccount(t *testing.T) {
	db, path := newTestStore(t)

	assert.True(t, db.Exists(ReservedOwnerID))

	role, err := db.Authenticate(ReservedOwnerID, "ownerpw")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleOwner, role)

	// the seeded account must have been persisted
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadCorruptFileReseeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	db := NewAccountDatabase(path, "ownerpw")
	require.NoError(t, db.Load())

	assert.True(t, db.Exists(ReservedOwnerID))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db, path := newTestStore(t)

	role, err := db.Register("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
	assert.True(t, db.Exists("alice"))

	role, err = db.Authenticate("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	_, err = db.Authenticate("alice", "wrongpw")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	// registration survives a reload from disk
	db2 := NewAccountDatabase(path, "ownerpw")
	require.NoError(t, db2.Load())
	role, err = db2.Authenticate("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	db, _ := newTestStore(t)

	_, err := db.Authenticate("ghost", "pw")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestRegisterReservedName(t *testing.T) {
	db, _ := newTestStore(t)

	_, err := db.Register(ReservedOwnerID, "pw")
	assert.ErrorIs(t, err, ErrReservedName)
}

func TestRegisterMemoryOnlyOnWriteFailure(t *testing.T) {
	// a path inside a directory that does not exist makes every save fail
	path := filepath.Join(t.TempDir(), "missing", "users.json")
	db := NewAccountDatabase(path, "ownerpw")
	require.NoError(t, db.Load())

	role, err := db.Register("bob", "pw2")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	// the store keeps serving from memory
	role, err = db.Authenticate("bob", "pw2")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
}
