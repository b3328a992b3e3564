package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/crypto"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/models"
)

// casRetryLimit bounds the reload-and-retry loop on attempt-state CAS
// conflicts. Conflicts require two simultaneous attempts on the same
// (record, scope) pair, so the loop terminates almost immediately in
// practice.
const casRetryLimit = 5

// UserScopeKey builds the attempt-state scope key for an authenticated
// user. Attempt counters are independent across scope keys.
func UserScopeKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// lockService is the concrete implementation of LockService.
type lockService struct {
	attempts store.AttemptStateRepository
	hasher   crypto.PasscodeHasher

	// maxAttempts failed candidates in a row trigger a lockout lasting
	// cooldown. Both come from config; defaults are 3 and 5 minutes.
	maxAttempts int
	cooldown    time.Duration

	logger *logger.Logger
}

// NewLockService constructs a LockService wired to the attempt-state
// repository and tuned from cfg.
func NewLockService(attempts store.AttemptStateRepository, hasher crypto.PasscodeHasher, cfg config.App, logger *logger.Logger) LockService {
	maxAttempts := cfg.MaxPasscodeAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	cooldown := cfg.LockCooldown
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}

	return &lockService{
		attempts:    attempts,
		hasher:      hasher,
		maxAttempts: maxAttempts,
		cooldown:    cooldown,
		logger:      logger,
	}
}

// MaskIfLocked implements LockService.
func (l *lockService) MaskIfLocked(record models.Record, unlocked bool) models.Record {
	if record.IsLocked && !unlocked {
		record.Content = models.LockedContentSentinel
	}
	return record
}

// VerifyPasscode implements LockService.
//
// The increment-and-check-threshold sequence is a single atomic store
// operation: the new state is written with compare-and-swap against the
// failed count that was read, so two concurrent third failures cannot
// both miss the lockout transition. On a CAS conflict the loop reloads
// the state and retries.
func (l *lockService) VerifyPasscode(ctx context.Context, record models.Record, scopeKey, candidate string) (models.UnlockResult, error) {
	log := logger.FromContext(ctx)

	if !record.IsLocked {
		return models.UnlockResult{Outcome: models.OutcomeUnlocked}, nil
	}

	for i := 0; i < casRetryLimit; i++ {
		state, err := l.attempts.GetAttemptState(ctx, record.RecordID, scopeKey)
		if err != nil {
			return models.UnlockResult{}, fmt.Errorf("loading attempt state: %w", err)
		}

		now := time.Now()
		if state.LockedOutAt(now) {
			// Rejected immediately: the candidate is not even checked and
			// the counter is not touched while the lockout holds.
			return models.UnlockResult{
				Outcome:    models.OutcomeLockedOut,
				RetryAfter: state.LockedUntil.Sub(now),
			}, nil
		}

		if l.hasher.Verify(candidate, record.LockPasscodeHash) {
			if err := l.attempts.ResetAttemptState(ctx, record.RecordID, scopeKey); err != nil {
				return models.UnlockResult{}, fmt.Errorf("resetting attempt state: %w", err)
			}
			return models.UnlockResult{Outcome: models.OutcomeUnlocked}, nil
		}

		failedBefore := state.FailedCount
		if state.LockedUntil != nil {
			// Prior lockout has expired: the state machine is back in
			// Closed and the counter restarts from zero.
			failedBefore = 0
		}

		next := models.AttemptState{
			RecordID:    record.RecordID,
			ScopeKey:    scopeKey,
			FailedCount: failedBefore + 1,
		}
		if next.FailedCount >= l.maxAttempts {
			until := now.Add(l.cooldown)
			next.LockedUntil = &until
		}

		err = l.attempts.CompareAndSwapAttemptState(ctx, next, state.FailedCount)
		if errors.Is(err, store.ErrAttemptStateConflict) {
			continue
		}
		if err != nil {
			return models.UnlockResult{}, fmt.Errorf("recording failed attempt: %w", err)
		}

		if next.LockedUntil != nil {
			log.Warn().
				Int64("recordID", record.RecordID).
				Str("scopeKey", scopeKey).
				Dur("cooldown", l.cooldown).
				Msg("record locked out after repeated failed passcode attempts")
			return models.UnlockResult{
				Outcome:    models.OutcomeLockedOut,
				RetryAfter: l.cooldown,
			}, nil
		}

		return models.UnlockResult{
			Outcome:           models.OutcomeRejected,
			RemainingAttempts: l.maxAttempts - next.FailedCount,
		}, nil
	}

	return models.UnlockResult{}, errors.New("attempt state contention not resolved")
}

// SetLock implements LockService. Only ever called after the record
// service has verified write access.
func (l *lockService) SetLock(ctx context.Context, record models.Record, passcode string) (models.Record, error) {
	digest, err := l.hasher.Hash(passcode)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := l.attempts.ClearRecordAttempts(ctx, record.RecordID); err != nil {
		return models.Record{}, fmt.Errorf("clearing attempt state: %w", err)
	}

	record.IsLocked = true
	record.LockPasscodeHash = digest
	return record, nil
}

// ClearLock implements LockService.
func (l *lockService) ClearLock(ctx context.Context, record models.Record) (models.Record, error) {
	if err := l.attempts.ClearRecordAttempts(ctx, record.RecordID); err != nil {
		return models.Record{}, fmt.Errorf("clearing attempt state: %w", err)
	}

	record.IsLocked = false
	record.LockPasscodeHash = ""
	return record, nil
}
