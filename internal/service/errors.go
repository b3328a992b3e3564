package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDataProvided is returned when a request payload fails
	// basic validation (empty login, unknown record type, bad role, ...).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned by Login for a bad login/password pair.
	// The same value covers an unknown login so that login probing and a
	// wrong password are indistinguishable to the caller.
	ErrWrongPassword = errors.New("wrong login or password")

	// ErrTokenCreationFailed is returned when a JWT cannot be issued.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid normalises every JWT validation failure
	// (expired, wrong issuer, bad signature, malformed).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrAccessDenied is returned for every authorization denial. It never
	// reveals why access was denied beyond "denied".
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound is returned only when the requested record or group does
	// not exist at all. An existing record the actor may not see yields
	// ErrAccessDenied instead, uniformly.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPasscode is returned when a passcode candidate does not
	// match and attempts remain. Concrete occurrences carry the remaining
	// attempt count; match with errors.Is, extract with errors.As on
	// *PasscodeRejectedError.
	ErrInvalidPasscode = errors.New("invalid passcode")

	// ErrLockedOut is returned while a record is in passcode lockout.
	// Concrete occurrences carry the retry-after duration; match with
	// errors.Is, extract with errors.As on *LockedOutError.
	ErrLockedOut = errors.New("too many failed passcode attempts")

	// ErrPasscodeRequired is returned when a reveal targets a locked
	// record and no candidate passcode was supplied.
	ErrPasscodeRequired = errors.New("passcode required")

	// ErrDecryptionFailure marks a server-side data-integrity fault: the
	// stored ciphertext could not be decrypted. Logged with full context
	// server-side; the actor only ever sees this generic value.
	ErrDecryptionFailure = errors.New("content could not be processed")
)

// PasscodeRejectedError is the concrete form of ErrInvalidPasscode,
// carrying how many attempts remain before lockout.
type PasscodeRejectedError struct {
	RemainingAttempts int
}

func (e *PasscodeRejectedError) Error() string {
	return fmt.Sprintf("invalid passcode, %d attempts remaining", e.RemainingAttempts)
}

// Is makes errors.Is(err, ErrInvalidPasscode) match.
func (e *PasscodeRejectedError) Is(target error) bool {
	return target == ErrInvalidPasscode
}

// LockedOutError is the concrete form of ErrLockedOut, carrying how long
// until attempts are accepted again.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed passcode attempts, retry after %s", e.RetryAfter)
}

// Is makes errors.Is(err, ErrLockedOut) match.
func (e *LockedOutError) Is(target error) bool {
	return target == ErrLockedOut
}
