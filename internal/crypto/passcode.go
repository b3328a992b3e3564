// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// passcodeHasher is the private implementation of [PasscodeHasher].
type passcodeHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewPasscodeHasher constructs a [PasscodeHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewPasscodeHasher() PasscodeHasher {
	return &passcodeHasher{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// Hash implements [PasscodeHasher]. The secret is trimmed before
// derivation so that paste artifacts ("1234 " vs "1234") do not produce
// distinct digests. The digest string is self-contained:
// base64(salt) "." base64(key).
func (p *passcodeHasher) Hash(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrEmptySecret
	}

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := p.derive(strings.TrimSpace(secret), salt)

	return base64.RawStdEncoding.EncodeToString(salt) + "." +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// Verify implements [PasscodeHasher]. The comparison over derived keys is
// constant-time; a malformed digest verifies as false.
func (p *passcodeHasher) Verify(candidate, digest string) bool {
	saltPart, keyPart, ok := strings.Cut(digest, ".")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltPart)
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(keyPart)
	if err != nil {
		return false
	}

	got := p.derive(strings.TrimSpace(candidate), salt)

	return subtle.ConstantTimeCompare(got, want) == 1
}

func (p *passcodeHasher) derive(secret string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(secret),
		salt,
		p.argonTime,
		p.argonMemory,
		p.argonThreads,
		p.argonKeyLen,
	)
}
