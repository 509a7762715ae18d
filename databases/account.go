package databases

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lobbychat/lobby-chat-api/models"
)

// ReservedOwnerID is the bootstrap owner identity. Nobody may register it.
const ReservedOwnerID = "owner"

// Auth failures surfaced by the account store.
var (
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrReservedName      = errors.New("reserved name")
)

// AccountDatabase contains the methods to use with the account store.
// Account ids are the case-insensitive normalization of the username;
// callers lowercase before calling in.
type AccountDatabase interface {
	Load() error
	Exists(id string) bool
	Authenticate(id, password string) (string, error)
	Register(id, password string) (string, error)
}

type fileAccountDatabase struct {
	mu            sync.Mutex
	path          string
	ownerPassword string
	accounts      map[string]models.Account
}

// NewAccountDatabase initializes a new account store backed by a JSON file
// at path. The file is read once on Load; every mutation is persisted
// synchronously. ownerPassword seeds the bootstrap owner account when the
// file is missing or unreadable.
func NewAccountDatabase(path, ownerPassword string) AccountDatabase {
	return &fileAccountDatabase{
		path:          path,
		ownerPassword: ownerPassword,
		accounts:      make(map[string]models.Account),
	}
}

// Load reads the users file. Missing or corrupt data is not fatal: the
// store reseeds itself with the bootstrap owner account and keeps going.
func (f *fileAccountDatabase) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err == nil {
		accounts := make(map[string]models.Account)
		if jsonErr := json.Unmarshal(data, &accounts); jsonErr == nil {
			f.accounts = accounts
			zap.S().Infow("loaded accounts", "file", f.path, "count", len(accounts))
			return nil
		} else {
			zap.S().Errorw("error loading accounts, reseeding", "file", f.path, "error", jsonErr)
		}
	} else if !os.IsNotExist(err) {
		zap.S().Errorw("error reading users file, reseeding", "file", f.path, "error", err)
	}

	// Initial owner account
	hash, err := bcrypt.GenerateFromPassword([]byte(f.ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	f.accounts = map[string]models.Account{
		ReservedOwnerID: {Password: string(hash), Role: models.RoleOwner},
	}
	f.save()
	return nil
}

func (f *fileAccountDatabase) Exists(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[id]
	return ok
}

// Authenticate returns the stored role when the password matches. A missing
// account and a wrong password are indistinguishable to the caller.
func (f *fileAccountDatabase) Authenticate(id, password string) (string, error) {
	f.mu.Lock()
	account, ok := f.accounts[id]
	f.mu.Unlock()
	if !ok {
		return "", ErrIncorrectPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", ErrIncorrectPassword
	}
	return account.Role, nil
}

// Register creates a user-role account and persists it synchronously. The
// bootstrap owner identity can never be registered.
func (f *fileAccountDatabase) Register(id, password string) (string, error) {
	if id == ReservedOwnerID {
		return "", ErrReservedName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[id] = models.Account{Password: string(hash), Role: models.RoleUser}
	f.save()
	return models.RoleUser, nil
}

// save writes the store to disk. Callers must hold f.mu. A failed write
// (read-only filesystem, missing dir) leaves the store running memory-only.
func (f *fileAccountDatabase) save() {
	data, err := json.MarshalIndent(f.accounts, "", "  ")
	if err != nil {
		zap.S().Errorw("error marshaling accounts", "error", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		zap.S().Errorw("error saving accounts (running in memory-only mode)", "file", f.path, "error", err)
	}
}
