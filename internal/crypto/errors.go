package crypto

import "errors"

// Sentinel errors returned by the field cipher. Callers should match them
// with [errors.Is].
var (
	// ErrEmptyPlaintext is returned by EncryptField when given an empty
	// input. Encrypting an absent field is a programming error on the
	// caller's side, not a user-facing condition.
	ErrEmptyPlaintext = errors.New("refusing to encrypt empty plaintext")

	// ErrEmptySecret is returned by Hash when the secret is empty after
	// trimming. A lock passcode or password must carry at least one
	// non-whitespace character.
	ErrEmptySecret = errors.New("refusing to hash empty secret")

	// ErrDecrypt is returned by DecryptField whenever the ciphertext
	// cannot be decoded, fails GCM authentication, or decrypts to an
	// empty string. The wrapped cause carries detail for server-side
	// logs; callers must surface only a generic failure to the actor.
	ErrDecrypt = errors.New("field decryption failed")
)
