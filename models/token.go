package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication
// flows. It embeds [jwt.Token] for signing and claim inspection and
// [jwt.RegisteredClaims] for standard claim access.
type Token struct {
	// Token is the underlying JWT token. Excluded from JSON because only
	// the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard RFC 7519 claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token,
	// ready to be transmitted in an Authorization header.
	SignedString string `json:"-"`

	// UserID is the subject claim parsed to int64, cached server-side.
	UserID int64 `json:"-"`

	// IsAdmin is carried as the custom "adm" claim so the transport layer
	// can build an Actor without a user lookup on every request.
	IsAdmin bool `json:"adm,omitempty"`
}

// GetUserID extracts the "sub" claim and parses it as a base-10 int64.
// Returns an error if the claim is missing, empty, or not numeric.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
