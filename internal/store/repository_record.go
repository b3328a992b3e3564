package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/models"
)

// recordRepository is the SQL-backed implementation of [RecordRepository].
// It executes record CRUD and sharing-ledger operations against the
// "records" and "record_shares" tables using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (record_id, user_id, etc.).
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the
// provided database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateRecord inserts the record and returns it with server-assigned
// fields (RecordID, timestamps) populated. Shares are not written here:
// a freshly created record has an empty ledger.
func (r *recordRepository) CreateRecord(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	var (
		lockHash sql.NullString
		groupID  sql.NullInt64
	)
	if record.LockPasscodeHash != "" {
		lockHash = sql.NullString{String: record.LockPasscodeHash, Valid: true}
	}
	if record.GroupID != nil {
		groupID = sql.NullInt64{Int64: *record.GroupID, Valid: true}
	}

	row := r.QueryRowContext(ctx, createRecord,
		record.OwnerID,
		groupID,
		record.Type,
		record.Title,
		record.Content,
		record.IsEncrypted,
		record.IsLocked,
		lockHash,
	)

	if err := row.Scan(&record.RecordID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "recordRepository.CreateRecord").
			Int64("owner_id", record.OwnerID).
			Msg("failed to insert record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// GetRecord retrieves one record by ID together with its sharing ledger.
// Returns [ErrRecordNotFound] when no row matches.
func (r *recordRepository) GetRecord(ctx context.Context, recordID int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	var record models.Record
	if err := r.scanRecord(r.QueryRowContext(ctx, getRecord, recordID), &record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("record_id", recordID).
			Msg("failed to query record")
		return models.Record{}, err
	}

	shares, err := r.loadShares(ctx, recordID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("record_id", recordID).
			Msg("failed to load record shares")
		return models.Record{}, err
	}
	record.SharedWith = shares

	return record, nil
}

// ListRecords retrieves every record visible to the user: owned by them,
// directly shared with them, or tagged with a group they own or belong to.
// With asAdmin the visibility predicate is dropped and all records are
// listed. recordType optionally narrows by type.
//
// The query is built with squirrel because the visibility predicate is
// composed of independent EXISTS branches plus optional filters.
func (r *recordRepository) ListRecords(ctx context.Context, userID int64, recordType string, asAdmin bool) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(
		"record_id", "owner_id", "group_id", "type", "title", "content",
		"is_encrypted", "is_locked", "lock_passcode_hash", "created_at", "updated_at").
		From("records r").
		OrderBy("record_id").
		PlaceholderFormat(sq.Dollar)

	if !asAdmin {
		builder = builder.Where(sq.Or{
			sq.Expr("r.owner_id = ?", userID),
			sq.Expr("EXISTS (SELECT 1 FROM record_shares s WHERE s.record_id = r.record_id AND s.user_id = ?)", userID),
			sq.Expr("EXISTS (SELECT 1 FROM group_members m WHERE m.group_id = r.group_id AND m.user_id = ?)", userID),
			sq.Expr("EXISTS (SELECT 1 FROM groups g WHERE g.group_id = r.group_id AND g.owner_id = ?)", userID),
		})
	}

	if recordType != "" {
		builder = builder.Where(sq.Eq{"r.type": recordType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to execute query for listing visible records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Record, 0, 50)

	for rows.Next() {
		var record models.Record
		if err := r.scanRecord(rows, &record); err != nil {
			log.Err(err).
				Str("func", "recordRepository.ListRecords").
				Int64("user_id", userID).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		results = append(results, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	for i := range results {
		shares, err := r.loadShares(ctx, results[i].RecordID)
		if err != nil {
			return nil, err
		}
		results[i].SharedWith = shares
	}

	return results, nil
}

// UpdateRecord rewrites the mutable columns of an existing record.
// Returns [ErrRecordNotFound] when the record no longer exists.
func (r *recordRepository) UpdateRecord(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	var (
		lockHash sql.NullString
		groupID  sql.NullInt64
	)
	if record.LockPasscodeHash != "" {
		lockHash = sql.NullString{String: record.LockPasscodeHash, Valid: true}
	}
	if record.GroupID != nil {
		groupID = sql.NullInt64{Int64: *record.GroupID, Valid: true}
	}

	res, err := r.ExecContext(ctx, updateRecord,
		record.RecordID,
		groupID,
		record.Title,
		record.Content,
		record.IsEncrypted,
		record.IsLocked,
		lockHash,
		time.Now().UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpdateRecord").
			Int64("record_id", record.RecordID).
			Msg("failed to update record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// DeleteRecord removes the record; shares and attempt states go with it
// via ON DELETE CASCADE. Returns [ErrRecordNotFound] on a miss.
func (r *recordRepository) DeleteRecord(ctx context.Context, recordID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.ExecContext(ctx, deleteRecord, recordID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteRecord").
			Int64("record_id", recordID).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// UpsertShare writes one sharing-ledger row. The ON CONFLICT clause keeps
// the at-most-one-entry-per-user invariant: re-granting overwrites.
func (r *recordRepository) UpsertShare(ctx context.Context, recordID, userID int64, permission models.Permission) error {
	log := logger.FromContext(ctx)

	if _, err := r.ExecContext(ctx, upsertShare, recordID, userID, string(permission)); err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertShare").
			Int64("record_id", recordID).
			Int64("user_id", userID).
			Msg("failed to upsert share")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteShare removes the sharing-ledger row of one user. Absent rows are
// a no-op: revoking an unshared user is not an error.
func (r *recordRepository) DeleteShare(ctx context.Context, recordID, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.ExecContext(ctx, deleteShare, recordID, userID); err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteShare").
			Int64("record_id", recordID).
			Int64("user_id", userID).
			Msg("failed to delete share")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *recordRepository) scanRecord(row rowScanner, record *models.Record) error {
	var (
		groupID  sql.NullInt64
		lockHash sql.NullString
	)

	if err := row.Scan(
		&record.RecordID,
		&record.OwnerID,
		&groupID,
		&record.Type,
		&record.Title,
		&record.Content,
		&record.IsEncrypted,
		&record.IsLocked,
		&lockHash,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return err
	}

	if groupID.Valid {
		record.GroupID = &groupID.Int64
	}
	record.LockPasscodeHash = lockHash.String

	return nil
}

func (r *recordRepository) loadShares(ctx context.Context, recordID int64) ([]models.Share, error) {
	rows, err := r.QueryContext(ctx, getRecordShares, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var shares []models.Share
	for rows.Next() {
		var (
			share models.Share
			perm  string
		)
		if err := rows.Scan(&share.UserID, &perm); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		share.Permission = models.Permission(perm)
		shares = append(shares, share)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return shares, nil
}
