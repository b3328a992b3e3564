package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/crypto"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScope = "user:42"

func newTestLockService(t *testing.T, attempts *memAttemptStates, cooldown time.Duration) (LockService, models.Record) {
	t.Helper()

	hasher := crypto.NewPasscodeHasher()
	digest, err := hasher.Hash("1234")
	require.NoError(t, err)

	svc := NewLockService(attempts, hasher, config.App{
		MaxPasscodeAttempts: 3,
		LockCooldown:        cooldown,
	}, logger.Nop())

	record := models.Record{
		RecordID:         77,
		OwnerID:          42,
		Type:             models.Note,
		Content:          "secret plans",
		IsLocked:         true,
		LockPasscodeHash: digest,
	}

	return svc, record
}

func TestLockService_MaskIfLocked(t *testing.T) {
	svc, record := newTestLockService(t, newMemAttemptStates(), time.Minute)

	masked := svc.MaskIfLocked(record, false)
	assert.Equal(t, models.LockedContentSentinel, masked.Content)

	open := svc.MaskIfLocked(record, true)
	assert.Equal(t, "secret plans", open.Content)

	record.IsLocked = false
	plain := svc.MaskIfLocked(record, false)
	assert.Equal(t, "secret plans", plain.Content)
}

func TestLockService_VerifyPasscode_UnlockedRecordPassesThrough(t *testing.T) {
	svc, record := newTestLockService(t, newMemAttemptStates(), time.Minute)
	record.IsLocked = false

	result, err := svc.VerifyPasscode(context.Background(), record, testScope, "anything")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnlocked, result.Outcome)
}

func TestLockService_VerifyPasscode_CorrectCandidate(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, time.Minute)

	result, err := svc.VerifyPasscode(context.Background(), record, testScope, "1234")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnlocked, result.Outcome)
}

// Three consecutive wrong passcodes: remaining attempts count down 2, 1,
// and the third failure flips straight to lockout. A fourth call with the
// correct passcode is still rejected while the cooldown holds.
func TestLockService_VerifyPasscode_LockoutThreshold(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, 5*time.Minute)
	ctx := context.Background()

	first, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejected, first.Outcome)
	assert.Equal(t, 2, first.RemainingAttempts)

	second, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejected, second.Outcome)
	assert.Equal(t, 1, second.RemainingAttempts)

	third, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLockedOut, third.Outcome)
	assert.Equal(t, 5*time.Minute, third.RetryAfter)

	// correct passcode is irrelevant while locked out
	fourth, err := svc.VerifyPasscode(ctx, record, testScope, "1234")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLockedOut, fourth.Outcome)
	assert.Greater(t, fourth.RetryAfter, time.Duration(0))
}

// After the cooldown elapses the correct passcode unlocks and the counter
// resets to zero.
func TestLockService_VerifyPasscode_LockoutExpiry(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
		require.NoError(t, err)
	}

	time.Sleep(5 * time.Millisecond)

	result, err := svc.VerifyPasscode(ctx, record, testScope, "1234")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnlocked, result.Outcome)

	state, err := attempts.GetAttemptState(ctx, record.RecordID, testScope)
	require.NoError(t, err)
	assert.Zero(t, state.FailedCount)
}

// A wrong passcode after an expired lockout restarts the counter instead
// of locking out immediately again.
func TestLockService_VerifyPasscode_CounterRestartsAfterExpiry(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
		require.NoError(t, err)
	}

	time.Sleep(5 * time.Millisecond)

	result, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejected, result.Outcome)
	assert.Equal(t, 2, result.RemainingAttempts)
}

// Attempt counters are independent across scope keys: one user's lockout
// does not block another user.
func TestLockService_VerifyPasscode_ScopesAreIndependent(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.VerifyPasscode(ctx, record, "user:1", "0000")
		require.NoError(t, err)
	}

	result, err := svc.VerifyPasscode(ctx, record, "user:2", "1234")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnlocked, result.Outcome)
}

// A CAS conflict (simultaneous attempt won the write) reloads and retries
// rather than failing the request.
func TestLockService_VerifyPasscode_RetriesOnCASConflict(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, 5*time.Minute)
	attempts.casErr = store.ErrAttemptStateConflict

	result, err := svc.VerifyPasscode(context.Background(), record, testScope, "0000")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejected, result.Outcome)
	assert.Equal(t, 2, result.RemainingAttempts)
}

func TestLockService_SetLock_ClearsAttemptState(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, 5*time.Minute)
	ctx := context.Background()

	_, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)

	locked, err := svc.SetLock(ctx, record, "9876")
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)
	assert.NotEmpty(t, locked.LockPasscodeHash)
	assert.NotEqual(t, record.LockPasscodeHash, locked.LockPasscodeHash)

	state, err := attempts.GetAttemptState(ctx, record.RecordID, testScope)
	require.NoError(t, err)
	assert.Zero(t, state.FailedCount)
}

func TestLockService_SetLock_EmptyPasscode(t *testing.T) {
	svc, record := newTestLockService(t, newMemAttemptStates(), 5*time.Minute)

	_, err := svc.SetLock(context.Background(), record, "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLockService_ClearLock(t *testing.T) {
	attempts := newMemAttemptStates()
	svc, record := newTestLockService(t, attempts, 5*time.Minute)
	ctx := context.Background()

	_, err := svc.VerifyPasscode(ctx, record, testScope, "0000")
	require.NoError(t, err)

	cleared, err := svc.ClearLock(ctx, record)
	require.NoError(t, err)
	assert.False(t, cleared.IsLocked)
	assert.Empty(t, cleared.LockPasscodeHash)

	state, err := attempts.GetAttemptState(ctx, record.RecordID, testScope)
	require.NoError(t, err)
	assert.Zero(t, state.FailedCount)
}
