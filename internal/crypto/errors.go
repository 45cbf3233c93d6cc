package crypto

import "errors"

var (
	// ErrKeyUnavailable means the key entry no longer exists in the
	// keystore (e.g. the keystore was wiped). Data encrypted under that
	// key is unrecoverable; callers must surface this verbatim rather
	// than retry.
	ErrKeyUnavailable = errors.New("envelope key unavailable")

	// ErrAuthenticationFailure means an envelope ciphertext/IV pair is
	// malformed, mismatched, or was produced under a different key.
	ErrAuthenticationFailure = errors.New("envelope authentication failure")

	// ErrDecryptionFailure means a passphrase-encrypted payload failed to
	// decrypt. Wrong passphrase, corrupted blob, and non-matching format
	// are deliberately indistinguishable.
	ErrDecryptionFailure = errors.New("payload decryption failure")
)
