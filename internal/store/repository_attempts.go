package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/models"
)

// attemptStateRepository is the SQL-backed implementation of
// [AttemptStateRepository]. Rows live in "attempt_states", keyed by
// (record_id, scope_key).
//
// The compare-and-swap methods are the serialization point for concurrent
// passcode attempts: the WHERE failed_count = expected guard guarantees
// that of two racing increments exactly one lands, so the lockout
// threshold cannot be skipped.
type attemptStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewAttemptStateRepository constructs an [AttemptStateRepository] backed
// by the provided database connection and logger.
func NewAttemptStateRepository(db *DB, logger *logger.Logger) AttemptStateRepository {
	logger.Debug().Msg("creating attempt state repository")
	return &attemptStateRepository{
		DB:     db,
		logger: logger,
	}
}

// GetAttemptState loads the state for (recordID, scopeKey), returning the
// zero state when no row exists.
func (a *attemptStateRepository) GetAttemptState(ctx context.Context, recordID int64, scopeKey string) (models.AttemptState, error) {
	log := logger.FromContext(ctx)

	state := models.AttemptState{RecordID: recordID, ScopeKey: scopeKey}

	var lockedUntil sql.NullTime
	err := a.QueryRowContext(ctx, getAttemptState, recordID, scopeKey).Scan(
		&state.RecordID,
		&state.ScopeKey,
		&state.FailedCount,
		&lockedUntil,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "attemptStateRepository.GetAttemptState").
			Int64("record_id", recordID).
			Msg("failed to query attempt state")
		return models.AttemptState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		state.LockedUntil = &t
	}

	return state, nil
}

// CompareAndSwapAttemptState implements the atomic increment contract.
// expectedCount selects the statement: zero goes through a conditional
// upsert (the row may not exist yet), anything else through a guarded
// UPDATE. Zero affected rows means a concurrent attempt advanced the
// counter first, reported as [ErrAttemptStateConflict].
func (a *attemptStateRepository) CompareAndSwapAttemptState(ctx context.Context, next models.AttemptState, expectedCount int) error {
	log := logger.FromContext(ctx)

	var lockedUntil sql.NullTime
	if next.LockedUntil != nil {
		lockedUntil = sql.NullTime{Time: *next.LockedUntil, Valid: true}
	}

	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	if expectedCount == 0 {
		res, err = a.ExecContext(ctx, casInsertAttemptState,
			next.RecordID, next.ScopeKey, next.FailedCount, lockedUntil, now)
	} else {
		res, err = a.ExecContext(ctx, casUpdateAttemptState,
			next.RecordID, next.ScopeKey, next.FailedCount, lockedUntil, now, expectedCount)
	}
	if err != nil {
		log.Err(err).
			Str("func", "attemptStateRepository.CompareAndSwapAttemptState").
			Int64("record_id", next.RecordID).
			Int("expected_count", expectedCount).
			Msg("failed to execute attempt state CAS")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAttemptStateConflict
	}

	return nil
}

// ResetAttemptState removes the row for (recordID, scopeKey).
func (a *attemptStateRepository) ResetAttemptState(ctx context.Context, recordID int64, scopeKey string) error {
	log := logger.FromContext(ctx)

	if _, err := a.ExecContext(ctx, resetAttemptState, recordID, scopeKey); err != nil {
		log.Err(err).
			Str("func", "attemptStateRepository.ResetAttemptState").
			Int64("record_id", recordID).
			Msg("failed to reset attempt state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearRecordAttempts removes every attempt row of the record.
func (a *attemptStateRepository) ClearRecordAttempts(ctx context.Context, recordID int64) error {
	log := logger.FromContext(ctx)

	if _, err := a.ExecContext(ctx, clearRecordAttempts, recordID); err != nil {
		log.Err(err).
			Str("func", "attemptStateRepository.ClearRecordAttempts").
			Int64("record_id", recordID).
			Msg("failed to clear record attempt states")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpired removes rows whose lockout expired before the given
// instant and returns the number of rows removed. Lazy lockout-expiry
// semantics do not depend on this; it is storage hygiene only.
func (a *attemptStateRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := a.ExecContext(ctx, deleteExpiredAttempts, before)
	if err != nil {
		log.Err(err).
			Str("func", "attemptStateRepository.DeleteExpired").
			Msg("failed to delete expired attempt states")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
