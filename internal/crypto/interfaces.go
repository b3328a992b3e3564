package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// FieldCipher encrypts and decrypts individual record fields with a single
// process-wide symmetric key. It knows nothing about users, records, or
// authorization: the record service invokes it only after access has
// already been granted.
type FieldCipher interface {
	// EncryptField encrypts a non-empty plaintext field and returns a
	// base64 blob (nonce || ciphertext). Calling it on an empty field is
	// a contract violation and fails with [ErrEmptyPlaintext].
	EncryptField(plaintext string) (string, error)

	// DecryptField reverses EncryptField. It fails with [ErrDecrypt] when
	// the blob cannot be decoded, fails authentication (tampered or wrong
	// key), or decrypts to an empty string. It never returns a silently
	// wrong value.
	DecryptField(ciphertext string) (string, error)
}

// PasscodeHasher derives and verifies digests of secondary secrets: record
// lock passcodes and account passwords. Verification is constant-time.
type PasscodeHasher interface {
	// Hash derives a self-contained digest string of the trimmed secret.
	Hash(secret string) (string, error)

	// Verify reports whether the trimmed candidate matches the digest.
	// A malformed digest verifies as false, never as an error the caller
	// must branch on.
	Verify(candidate, digest string) bool
}
