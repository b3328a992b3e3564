// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// fieldCipher is the private implementation of [FieldCipher].
//
// Construction: AES-256-GCM keyed by SHA-256 of the configured secret, a
// random 12-byte nonce per encryption, blob = nonce ‖ ciphertext encoded
// with standard base64. GCM authentication means a tampered blob or a
// different key fails decryption deterministically instead of producing
// garbage plaintext.
type fieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a [FieldCipher] from the process-wide secret
// supplied by configuration. The secret may be any non-empty string; it is
// normalized to a 256-bit key with SHA-256. Returns an error when the
// secret is empty so the process fails fast at startup rather than at the
// first encryption.
func NewFieldCipher(secret string) (FieldCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption key is not configured")
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &fieldCipher{aead: gcm}, nil
}

// EncryptField implements [FieldCipher].
func (f *fieldCipher) EncryptField(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	nonce := make([]byte, f.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so DecryptField can split it out again.
	blob := f.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptField implements [FieldCipher].
func (f *fieldCipher) DecryptField(ciphertext string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrDecrypt, err)
	}

	nonceSize := f.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, sealed := blob[:nonceSize], blob[nonceSize:]

	// Decrypt and verify the auth tag. A failure here means the blob was
	// tampered with or was produced under a different key.
	plaintext, err := f.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	// Empty plaintext is disallowed: EncryptField never produces it, so
	// an empty result can only mean corrupt data.
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: empty plaintext", ErrDecrypt)
	}

	return string(plaintext), nil
}
