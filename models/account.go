package models

// Account roles. Owner is only ever assigned to the bootstrap account.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// Account holds the persisted credential record for a registered username.
// The store keys accounts by the lowercased username, so the id does not
// appear in the record itself.
type Account struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}
