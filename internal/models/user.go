package models

// User represents a registered user of the system.
type User struct {
	UID          string // unique user identifier
	Email        string // e-mail address
	Username     string // unique login name
	PasswordHash string // bcrypt hash of the password
	Role         string // default role, admin or user
	APIToken     string // opaque personal token for the fallback auth path
}
