package models

// Permission is the level of access a direct share grants on a record,
// independent of any group membership.
type Permission string

const (
	// PermissionView allows reading the record only.
	PermissionView Permission = "view"

	// PermissionEdit allows reading and writing the record. It never
	// grants deletion or group management.
	PermissionEdit Permission = "edit"

	// PermissionNone means no direct share exists for the user.
	PermissionNone Permission = "none"
)

// Valid reports whether p is a permission that may be stored in a share row.
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// Share is one direct-share row of the sharing ledger:
// at most one per (record, user) pair.
type Share struct {
	UserID     int64      `json:"user_id"`
	Permission Permission `json:"permission"`
}
