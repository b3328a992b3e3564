package models

import "time"

// AttemptState tracks failed passcode attempts against one record by one
// principal. It is owned by the lock service and must never leak into
// persisted Record state or outbound responses.
type AttemptState struct {
	// RecordID identifies the locked record the attempts target.
	RecordID int64

	// ScopeKey identifies the attempting principal ("user:<id>").
	// Attempt counters are independent across scope keys.
	ScopeKey string

	// FailedCount is the number of consecutive failed attempts.
	// Reset to zero on a successful unlock.
	FailedCount int

	// LockedUntil is set once FailedCount reaches the attempt limit.
	// While it lies in the future every attempt is rejected immediately;
	// expiry is computed lazily at the next access, not by a timer.
	LockedUntil *time.Time
}

// TableName returns the name of the database table
// associated with the AttemptState model.
func (a AttemptState) TableName() string {
	return "attempt_states"
}

// LockedOutAt reports whether the state constitutes an active lockout at
// the given instant.
func (a AttemptState) LockedOutAt(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

// UnlockOutcome enumerates the possible results of a passcode attempt.
type UnlockOutcome string

const (
	// OutcomeUnlocked means the candidate matched; the attempt counter
	// has been reset and the caller may access the content.
	OutcomeUnlocked UnlockOutcome = "unlocked"

	// OutcomeRejected means the candidate did not match and attempts
	// remain before lockout.
	OutcomeRejected UnlockOutcome = "rejected"

	// OutcomeLockedOut means the attempt limit has been reached; further
	// attempts are rejected without consulting the passcode until the
	// cooldown elapses.
	OutcomeLockedOut UnlockOutcome = "locked_out"
)

// UnlockResult is the value-typed outcome of a passcode attempt.
// Passcode verification never fails with an error for a wrong candidate;
// errors are reserved for persistence faults.
type UnlockResult struct {
	Outcome UnlockOutcome `json:"outcome"`

	// RemainingAttempts is meaningful for OutcomeRejected: how many
	// attempts are left before lockout.
	RemainingAttempts int `json:"remaining_attempts,omitempty"`

	// RetryAfter is meaningful for OutcomeLockedOut: how long until
	// attempts are accepted again.
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}
