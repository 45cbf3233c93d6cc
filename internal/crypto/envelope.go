// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// envelopeCipher is the private implementation of [EnvelopeCipher]. The key
// alias is injected at construction; nothing in this type reads global
// state.
type envelopeCipher struct {
	keystore KeyStore
	alias    string
}

// NewEnvelopeCipher constructs an [EnvelopeCipher] bound to the key held
// under alias in keystore.
func NewEnvelopeCipher(keystore KeyStore, alias string) EnvelopeCipher {
	return &envelopeCipher{
		keystore: keystore,
		alias:    alias,
	}
}

// EnsureKeyExists implements [EnvelopeCipher].
func (e *envelopeCipher) EnsureKeyExists(requireUserAuth bool) error {
	return e.keystore.EnsureKey(e.alias, KeyOptions{RequireUserAuth: requireUserAuth})
}

// KeyID implements [EnvelopeCipher]. The identifier is the alias itself:
// rotation introduces a new alias, and records remember which one sealed
// them.
func (e *envelopeCipher) KeyID() string {
	return e.alias
}

// Encrypt implements [EnvelopeCipher]. It seals plaintext with AES-256-GCM
// under a fresh random 12-byte IV and returns ciphertext and IV as separate
// base64 strings; the caller must persist both.
func (e *envelopeCipher) Encrypt(plaintext string) (string, string, error) {
	gcm, err := e.aead(e.alias)
	if err != nil {
		return "", "", err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("generate iv: %w", err)
	}

	ciphertext := gcm.Seal(nil, iv, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(iv),
		nil
}

// Decrypt implements [EnvelopeCipher].
func (e *envelopeCipher) Decrypt(ciphertextB64, ivB64 string) (string, error) {
	return e.DecryptUnder(e.alias, ciphertextB64, ivB64)
}

// DecryptUnder implements [EnvelopeCipher]. Any decode or tag failure maps
// to ErrAuthenticationFailure; a missing key entry maps to
// ErrKeyUnavailable, which callers must treat as "stored secrets
// unreadable" rather than a transient fault.
func (e *envelopeCipher) DecryptUnder(keyID, ciphertextB64, ivB64 string) (string, error) {
	gcm, err := e.aead(keyID)
	if err != nil {
		return "", err
	}

	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext", ErrAuthenticationFailure)
	}
	iv, err := base64.StdEncoding.DecodeString(ivB64)
	if err != nil {
		return "", fmt.Errorf("%w: decode iv", ErrAuthenticationFailure)
	}
	if len(iv) != gcm.NonceSize() {
		return "", fmt.Errorf("%w: iv length %d", ErrAuthenticationFailure, len(iv))
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAuthenticationFailure, "tag mismatch")
	}

	return string(plaintext), nil
}

// IsKeystoreValid implements [EnvelopeCipher]. The probe creates the key if
// absent, then round-trips a short constant; any failure means backups made
// now would contain undecryptable entries.
func (e *envelopeCipher) IsKeystoreValid() bool {
	if err := e.EnsureKeyExists(false); err != nil {
		return false
	}

	const probe = "keystore-probe"
	ct, iv, err := e.Encrypt(probe)
	if err != nil {
		return false
	}
	got, err := e.Decrypt(ct, iv)

	return err == nil && got == probe
}

// aead builds the AES-256-GCM primitive for the key stored under alias.
func (e *envelopeCipher) aead(alias string) (cipher.AEAD, error) {
	key, _, err := e.keystore.Key(alias)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
