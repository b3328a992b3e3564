package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	// Typically used during authentication.
	Login string `json:"login"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the Argon2id digest of the user's password.
	// This value MUST be a derived value (KDF output), never plaintext.
	PasswordHash string `json:"-"`

	// IsAdmin marks a system-wide superuser. An admin bypasses every
	// record-level check: read, write, delete, and group management.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Actor is the authenticated identity attempting an operation.
// It is assembled by the transport layer after token validation and is
// trusted completely by the core: no service re-authenticates it.
type Actor struct {
	ID      int64
	IsAdmin bool
}

// ActorOf derives the Actor view of a user.
func ActorOf(u User) Actor {
	return Actor{ID: u.UserID, IsAdmin: u.IsAdmin}
}
