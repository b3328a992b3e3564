package models

import "time"

// Record types stored by the service.
const (
	Note          = "note"
	PasswordEntry = "password_entry"
)

// LockedContentSentinel replaces Record.Content in outbound responses when
// the record is passcode-locked and the caller has not unlocked it.
const LockedContentSentinel = "••• locked •••"

// Record generalizes a note or a password entry. A record is always owned
// by exactly one user; it may additionally be shared 1:1 through the
// sharing ledger (SharedWith) or collectively through a group (GroupID),
// and its content may be passcode-locked and/or encrypted at rest.
type Record struct {
	// RecordID is the internal unique identifier of the record.
	RecordID int64 `json:"record_id"`

	// OwnerID identifies the owning user. The owner can always read,
	// write, and delete the record regardless of sharing or group state.
	OwnerID int64 `json:"owner_id"`

	// GroupID optionally tags the record with a group. Group members gain
	// read access, group admins and the group owner gain write access.
	// Nil when the record is not group-shared.
	GroupID *int64 `json:"group_id,omitempty"`

	// Type is one of Note or PasswordEntry.
	Type string `json:"type"`

	// Title is the non-sensitive display title of the record.
	Title string `json:"title"`

	// Content is the record payload. When IsEncrypted is true this holds
	// ciphertext; plaintext otherwise. Masked in outbound responses while
	// the record is locked.
	Content string `json:"content"`

	// IsEncrypted indicates whether Content is encrypted at rest.
	IsEncrypted bool `json:"is_encrypted"`

	// IsLocked indicates whether a passcode gates the content.
	IsLocked bool `json:"is_locked"`

	// LockPasscodeHash is the Argon2id digest of the trimmed passcode.
	// Present only when IsLocked. Never serialized.
	LockPasscodeHash string `json:"-"`

	// SharedWith is the sharing ledger: direct per-user grants,
	// at most one entry per user.
	SharedWith []Share `json:"shared_with,omitempty"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}

// PermissionOf resolves the direct-share permission of userID on the
// record, PermissionNone when no share exists. Pure function of the
// current ledger state; group membership is not consulted.
func (r Record) PermissionOf(userID int64) Permission {
	for _, s := range r.SharedWith {
		if s.UserID == userID {
			return s.Permission
		}
	}
	return PermissionNone
}

// Grant upserts a direct share for userID. Granting to a user that already
// holds a share overwrites the permission rather than duplicating the entry.
func (r *Record) Grant(userID int64, permission Permission) {
	for i := range r.SharedWith {
		if r.SharedWith[i].UserID == userID {
			r.SharedWith[i].Permission = permission
			return
		}
	}
	r.SharedWith = append(r.SharedWith, Share{UserID: userID, Permission: permission})
}

// Revoke removes the direct share of userID, preserving order.
// Revoking an absent share is a no-op.
func (r *Record) Revoke(userID int64) {
	for i := range r.SharedWith {
		if r.SharedWith[i].UserID == userID {
			r.SharedWith = append(r.SharedWith[:i], r.SharedWith[i+1:]...)
			return
		}
	}
}
