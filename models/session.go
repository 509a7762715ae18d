package models

// Session is the live, connection-scoped record of an authenticated identity.
// Username keeps the casing the user typed at login; Origin is the network
// address the connection came from and doubles as the ban key.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Origin   string `json:"-"`
}

// UserInfo is the presence-list entry broadcast on update_users.
type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
