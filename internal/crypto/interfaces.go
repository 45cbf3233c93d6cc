// SPDX-License-Identifier: Apache-2.0

package crypto

// KeyStore holds non-exportable symmetric keys addressed by alias. It
// stands in for the platform secure element: key material never crosses the
// store boundary except to the ciphers in this package, and a wiped store
// is the only way an alias disappears.
type KeyStore interface {
	// EnsureKey generates a key under alias if none exists. Idempotent:
	// calling it again with an existing alias has no observable effect.
	EnsureKey(alias string, opts KeyOptions) error

	// Key returns the key material and the options it was created with.
	// Returns ErrKeyUnavailable if no entry exists under alias.
	Key(alias string) ([]byte, KeyOptions, error)

	// Contains reports whether an entry exists under alias.
	Contains(alias string) bool

	// Delete removes the entry under alias. Removing a missing alias is
	// not an error.
	Delete(alias string) error
}

// KeyOptions configures a key at generation time.
type KeyOptions struct {
	// RequireUserAuth demands a fresh device authentication event before
	// every cryptographic operation with the key.
	RequireUserAuth bool
}

// EnvelopeCipher protects short secrets (a password string, a PIN) with
// AES-256-GCM under a keystore-held key. Ciphertext and IV are returned
// separately base64-encoded and must be persisted together.
//
// Because the key never leaves the keystore, envelope ciphertext is not
// portable across installations; portable backups go through
// [PassphraseCipher] instead.
type EnvelopeCipher interface {
	// EnsureKeyExists generates the cipher's key if it is not present.
	// Idempotent.
	EnsureKeyExists(requireUserAuth bool) error

	// KeyID names the key generation this cipher encrypts under. Stored
	// alongside ciphertext so rotated generations stay decryptable.
	KeyID() string

	// Encrypt seals plaintext under a fresh random IV. The same IV is
	// never reused with the same key.
	Encrypt(plaintext string) (ciphertextB64, ivB64 string, err error)

	// Decrypt opens a ciphertext/IV pair produced by Encrypt. Returns
	// ErrAuthenticationFailure on a malformed or mismatched pair and
	// ErrKeyUnavailable if the key entry is gone.
	Decrypt(ciphertextB64, ivB64 string) (string, error)

	// DecryptUnder is Decrypt against an explicit key generation, for
	// records written before a key rotation.
	DecryptUnder(keyID, ciphertextB64, ivB64 string) (string, error)

	// IsKeystoreValid probes the keystore non-destructively: the key must
	// exist (creating it if needed) and survive a trivial encrypt/decrypt
	// round trip. Used as an export guard.
	IsKeystoreValid() bool
}

// PassphraseCipher produces portable encrypted backup blobs that decrypt on
// any installation given the correct passphrase.
type PassphraseCipher interface {
	// EncryptPayload derives a key from (passphrase, random salt) with
	// Argon2id and seals plaintext into a self-describing text blob:
	// version ‖ salt ‖ nonce ‖ ciphertext+tag.
	EncryptPayload(plaintext string, passphrase []byte) (string, error)

	// DecryptPayload reverses EncryptPayload for current-scheme blobs.
	// Returns ErrDecryptionFailure on any mismatch; the error carries no
	// oracle distinguishing wrong passphrase from corruption.
	DecryptPayload(blob string, passphrase []byte) (string, error)

	// DecryptPayloadLegacy decrypts blobs produced by the retired
	// PBKDF2-based scheme, kept readable for old backup files.
	DecryptPayloadLegacy(blob string, passphrase []byte) (string, error)
}
