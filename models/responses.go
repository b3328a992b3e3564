package models

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	// Token is the signed JWT the client presents on subsequent requests.
	Token string `json:"token"`

	// UserID identifies the authenticated account.
	UserID int64 `json:"user_id"`
}

// RevealResponse carries a record whose content has passed the full
// authorize → unlock → decrypt pipeline.
type RevealResponse struct {
	Record Record `json:"record"`
}

// UnlockRejectedResponse is returned when a passcode attempt fails but
// attempts remain before lockout.
type UnlockRejectedResponse struct {
	Error             string `json:"error"`
	RemainingAttempts int    `json:"remaining_attempts"`
}

// LockedOutResponse is returned while a record is in lockout. RetryAfter
// is the number of whole seconds until attempts are accepted again; the
// same value is sent in the Retry-After header.
type LockedOutResponse struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retry_after_seconds"`
}
