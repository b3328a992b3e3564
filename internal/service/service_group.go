package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-record-keeper/internal/access"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/models"
)

// groupService is the concrete implementation of GroupService. Membership
// management is gated by the resolver's CanManageGroup: group owner, group
// admin, or system admin.
type groupService struct {
	groups   store.GroupRepository
	resolver access.Resolver

	logger *logger.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(groups store.GroupRepository, logger *logger.Logger) GroupService {
	return &groupService{
		groups:   groups,
		resolver: access.NewResolver(),
		logger:   logger,
	}
}

// CreateGroup creates a group owned by the actor. The owner is not
// written into the member list; RoleOf treats the owner as admin-equivalent.
func (s *groupService) CreateGroup(ctx context.Context, actor models.Actor, name string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, fmt.Errorf("%w: empty group name", ErrInvalidDataProvided)
	}

	created, err := s.groups.CreateGroup(ctx, models.Group{Name: name, OwnerID: actor.ID})
	if err != nil {
		return models.Group{}, fmt.Errorf("creating group: %w", err)
	}

	return created, nil
}

// GetGroup returns the group with members loaded. Visible to the owner,
// any member, or a system admin.
func (s *groupService) GetGroup(ctx context.Context, actor models.Actor, groupID int64) (models.Group, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}

	if !actor.IsAdmin && group.RoleOf(actor.ID) == models.RoleNone {
		return models.Group{}, ErrAccessDenied
	}

	return group, nil
}

// RenameGroup changes the display name of the group.
func (s *groupService) RenameGroup(ctx context.Context, actor models.Actor, groupID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty group name", ErrInvalidDataProvided)
	}

	if _, err := s.loadManaged(ctx, actor, groupID); err != nil {
		return err
	}

	if err := s.groups.RenameGroup(ctx, groupID, name); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("renaming group: %w", err)
	}

	return nil
}

// DeleteGroup removes the group and its membership rows. Records tagged
// with the group keep existing; the storage layer nulls their group tag.
func (s *groupService) DeleteGroup(ctx context.Context, actor models.Actor, groupID int64) error {
	if _, err := s.loadManaged(ctx, actor, groupID); err != nil {
		return err
	}

	if err := s.groups.DeleteGroup(ctx, groupID); err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting group: %w", err)
	}

	return nil
}

// AddMember adds a user to the group or updates their role if they are
// already a member. The owner cannot be added as a member row.
func (s *groupService) AddMember(ctx context.Context, actor models.Actor, groupID, userID int64, role models.Role) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return fmt.Errorf("%w: unknown group role %q", ErrInvalidDataProvided, role)
	}

	group, err := s.loadManaged(ctx, actor, groupID)
	if err != nil {
		return err
	}

	if userID == group.OwnerID {
		return fmt.Errorf("%w: owner is already admin-equivalent", ErrInvalidDataProvided)
	}

	if err := s.groups.UpsertMember(ctx, groupID, userID, role); err != nil {
		return fmt.Errorf("adding group member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from the group. Removing a non-member is a
// no-op.
func (s *groupService) RemoveMember(ctx context.Context, actor models.Actor, groupID, userID int64) error {
	if _, err := s.loadManaged(ctx, actor, groupID); err != nil {
		return err
	}

	if err := s.groups.DeleteMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("removing group member: %w", err)
	}

	return nil
}

// loadGroup fetches a group, translating absence into ErrNotFound.
func (s *groupService) loadGroup(ctx context.Context, groupID int64) (models.Group, error) {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrGroupNotFound) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, fmt.Errorf("loading group: %w", err)
	}
	return group, nil
}

// loadManaged fetches the group and verifies the actor may manage it.
func (s *groupService) loadManaged(ctx context.Context, actor models.Actor, groupID int64) (models.Group, error) {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}

	if !s.resolver.CanManageGroup(actor, group) {
		return models.Group{}, ErrAccessDenied
	}

	return group, nil
}
