package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/models"
)

// groupRepository is the SQL-backed implementation of [GroupRepository].
// It manages the "groups" and "group_members" tables.
type groupRepository struct {
	*DB
	logger *logger.Logger
}

// NewGroupRepository constructs a [GroupRepository] backed by the provided
// database connection and logger.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateGroup inserts the group and returns it with server-assigned fields
// populated. A new group starts with no explicit membership rows; the
// owner's rights are implicit.
func (g *groupRepository) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	log := logger.FromContext(ctx)

	row := g.QueryRowContext(ctx, createGroup, group.Name, group.OwnerID)
	if err := row.Scan(&group.GroupID, &group.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "groupRepository.CreateGroup").
			Int64("owner_id", group.OwnerID).
			Msg("failed to insert group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return group, nil
}

// GetGroup retrieves one group by ID together with its membership rows.
// Returns [ErrGroupNotFound] when no row matches.
func (g *groupRepository) GetGroup(ctx context.Context, groupID int64) (models.Group, error) {
	log := logger.FromContext(ctx)

	var group models.Group
	err := g.QueryRowContext(ctx, getGroup, groupID).Scan(
		&group.GroupID,
		&group.Name,
		&group.OwnerID,
		&group.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetGroup").
			Int64("group_id", groupID).
			Msg("failed to query group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rows, err := g.QueryContext(ctx, getGroupMembers, groupID)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetGroup").
			Int64("group_id", groupID).
			Msg("failed to query group members")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			member models.GroupMember
			role   string
		)
		if err := rows.Scan(&member.UserID, &role); err != nil {
			return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		member.Role = models.Role(role)
		group.Members = append(group.Members, member)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return group, nil
}

// RenameGroup updates the display name.
// Returns [ErrGroupNotFound] on a miss.
func (g *groupRepository) RenameGroup(ctx context.Context, groupID int64, name string) error {
	return g.execGroup(ctx, "groupRepository.RenameGroup", renameGroup, groupID, name)
}

// DeleteGroup removes the group; membership rows cascade. Records tagged
// with the group keep their group_id reference set to NULL by the schema,
// so they fall back to owner/share access.
func (g *groupRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	return g.execGroup(ctx, "groupRepository.DeleteGroup", deleteGroup, groupID)
}

// UpsertMember writes one membership row. Adding a user that is already a
// member overwrites the role rather than duplicating the row.
func (g *groupRepository) UpsertMember(ctx context.Context, groupID, userID int64, role models.Role) error {
	log := logger.FromContext(ctx)

	if _, err := g.ExecContext(ctx, upsertGroupMember, groupID, userID, string(role)); err != nil {
		log.Err(err).
			Str("func", "groupRepository.UpsertMember").
			Int64("group_id", groupID).
			Int64("user_id", userID).
			Msg("failed to upsert group member")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteMember removes one membership row. Absent rows are a no-op.
func (g *groupRepository) DeleteMember(ctx context.Context, groupID, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := g.ExecContext(ctx, deleteGroupMember, groupID, userID); err != nil {
		log.Err(err).
			Str("func", "groupRepository.DeleteMember").
			Int64("group_id", groupID).
			Int64("user_id", userID).
			Msg("failed to delete group member")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (g *groupRepository) execGroup(ctx context.Context, fn, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := g.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute group statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrGroupNotFound
	}

	return nil
}
