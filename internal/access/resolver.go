// Package access implements the single authorization resolver for records
// and groups. Every handler and service asks this package instead of
// re-deriving permission checks inline, so read/write policy cannot drift
// between notes and password entries.
//
// All methods are pure functions of their inputs: they never touch storage,
// never log, and never fail. Business-logic denial is a false return, not an
// error. Dereferencing record and group IDs is the caller's job; a record
// whose group cannot be resolved is passed in with a nil group, which makes
// the group path contribute nothing.
package access

import "github.com/MKhiriev/go-record-keeper/models"

// Action enumerates the operations the resolver can authorize.
type Action string

const (
	ActionRead        Action = "read"
	ActionWrite       Action = "write"
	ActionDelete      Action = "delete"
	ActionManageGroup Action = "manage_group"
)

// Resolver composes ownership, the sharing ledger, and group membership
// into yes/no answers. The zero value is ready to use.
type Resolver struct{}

// NewResolver returns a ready-to-use Resolver.
func NewResolver() Resolver {
	return Resolver{}
}

// CanRead reports whether the actor may read the record. Evaluation order,
// short-circuiting on the first grant: system admin, owner, any direct
// share, any group role. group is the resolved group for record.GroupID or
// nil when the record is not group-tagged or the group could not be
// resolved.
func (Resolver) CanRead(actor models.Actor, record models.Record, group *models.Group) bool {
	if actor.IsAdmin || actor.ID == record.OwnerID {
		return true
	}
	if record.PermissionOf(actor.ID) != models.PermissionNone {
		return true
	}
	if record.GroupID != nil && group != nil {
		return group.RoleOf(actor.ID) != models.RoleNone
	}
	return false
}

// CanWrite reports whether the actor may modify the record, its sharing
// ledger, its lock state, or its encryption flag. An edit share or a group
// owner/admin role grants write; a view share or plain membership does not.
func (Resolver) CanWrite(actor models.Actor, record models.Record, group *models.Group) bool {
	if actor.IsAdmin || actor.ID == record.OwnerID {
		return true
	}
	if record.PermissionOf(actor.ID) == models.PermissionEdit {
		return true
	}
	if record.GroupID != nil && group != nil {
		role := group.RoleOf(actor.ID)
		return role == models.RoleOwner || role == models.RoleAdmin
	}
	return false
}

// CanDelete reports whether the actor may delete the record. Deletion is
// reserved to the record owner and system admins: group admins and edit
// shares can change content but not destroy it.
func (Resolver) CanDelete(actor models.Actor, record models.Record) bool {
	return actor.IsAdmin || actor.ID == record.OwnerID
}

// CanManageGroup reports whether the actor may add or remove members,
// rename, or delete the group. Allowed for the group owner, a member with
// the admin role, and system admins, independent of any specific record.
func (Resolver) CanManageGroup(actor models.Actor, group models.Group) bool {
	if actor.IsAdmin {
		return true
	}
	role := group.RoleOf(actor.ID)
	return role == models.RoleOwner || role == models.RoleAdmin
}

// Can dispatches an action to the matching check. ActionManageGroup
// requires a non-nil group; without one it denies. Unknown actions deny.
func (r Resolver) Can(actor models.Actor, action Action, record models.Record, group *models.Group) bool {
	switch action {
	case ActionRead:
		return r.CanRead(actor, record, group)
	case ActionWrite:
		return r.CanWrite(actor, record, group)
	case ActionDelete:
		return r.CanDelete(actor, record)
	case ActionManageGroup:
		if group == nil {
			return false
		}
		return r.CanManageGroup(actor, *group)
	default:
		return false
	}
}
