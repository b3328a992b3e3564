package models

import "time"

// Role classifies a user's standing inside a group.
type Role string

const (
	// RoleOwner is the single user that created the group. The owner does
	// not need a row in Members and is always treated as admin-equivalent
	// for authorization; the distinct tag is kept for display and audit.
	RoleOwner Role = "owner"

	// RoleAdmin may edit group-tagged records and manage membership.
	RoleAdmin Role = "admin"

	// RoleMember may read group-tagged records but not change them.
	RoleMember Role = "member"

	// RoleNone means the user has no standing in the group.
	RoleNone Role = "none"
)

// Valid reports whether r is a role that may be stored in a membership row.
// RoleOwner is derived from Group.OwnerID and is never stored.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// GroupMember is one membership row: exactly one per (group, user) pair.
type GroupMember struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// Group is a named collection of users granting role-based access to the
// records tagged with it.
type Group struct {
	// GroupID is the internal unique identifier of the group.
	GroupID int64 `json:"group_id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// OwnerID identifies the user that created the group and holds
	// implicit admin rights over it.
	OwnerID int64 `json:"owner_id"`

	// Members holds the explicit membership rows. The owner is not
	// required to appear here. A user appears at most once.
	Members []GroupMember `json:"members"`

	// CreatedAt is the timestamp when the group was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}

// RoleOf resolves the role of userID in the group. It is a total, pure
// function of the current group state: the owner resolves to RoleOwner,
// a user present in Members resolves to the recorded role, and everyone
// else resolves to RoleNone.
func (g Group) RoleOf(userID int64) Role {
	if userID == g.OwnerID {
		return RoleOwner
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return RoleNone
}

// SetMember upserts the membership row for userID. Adding a user that is
// already a member overwrites the role rather than duplicating the row.
func (g *Group) SetMember(userID int64, role Role) {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			g.Members[i].Role = role
			return
		}
	}
	g.Members = append(g.Members, GroupMember{UserID: userID, Role: role})
}

// RemoveMember deletes the membership row for userID, preserving order.
// Removing an absent user is a no-op.
func (g *Group) RemoveMember(userID int64) {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return
		}
	}
}
