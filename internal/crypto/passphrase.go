// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Blob version markers. The marker is the first field of every encoded
// payload, so the decrypt routine recovers the scheme without external
// metadata.
const (
	blobVersionCurrent = "pv2" // Argon2id
	blobVersionLegacy  = "pv1" // PBKDF2-SHA256, kept decryptable
)

const (
	saltLen = 16
	keyLen  = 32 // 256 bits

	// legacyPBKDF2Iterations matches the retired scheme exactly; changing
	// it would silently orphan every old backup file.
	legacyPBKDF2Iterations = 10000
)

// passphraseCipher is the private implementation of [PassphraseCipher].
type passphraseCipher struct {
	// Argon2id tuning parameters. Injected so the mobile target can trade
	// derivation time against memory pressure.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewPassphraseCipher constructs a [PassphraseCipher] with the given
// Argon2id costs. The application defaults follow the OWASP (2024)
// recommendation: time 1, memory 64 MiB, parallelism 4 — which lands the
// derivation in the low hundreds of milliseconds on a mobile-class CPU.
func NewPassphraseCipher(argonTime, argonMemoryKiB uint32, argonThreads uint8) PassphraseCipher {
	return &passphraseCipher{
		argonTime:    argonTime,
		argonMemory:  argonMemoryKiB,
		argonThreads: argonThreads,
	}
}

// EncryptPayload implements [PassphraseCipher]. Output layout:
//
//	pv2$base64(salt)$base64(nonce)$base64(ciphertext+tag)
func (p *passphraseCipher) EncryptPayload(plaintext string, passphrase []byte) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(passphrase, salt, p.argonTime, p.argonMemory, p.argonThreads, keyLen)

	gcm, err := aeadForKey(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	return strings.Join([]string{
		blobVersionCurrent,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, "$"), nil
}

// DecryptPayload implements [PassphraseCipher].
func (p *passphraseCipher) DecryptPayload(blob string, passphrase []byte) (string, error) {
	salt, nonce, ciphertext, err := parseBlob(blob, blobVersionCurrent)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey(passphrase, salt, p.argonTime, p.argonMemory, p.argonThreads, keyLen)
	return openPayload(key, nonce, ciphertext)
}

// DecryptPayloadLegacy implements [PassphraseCipher].
func (p *passphraseCipher) DecryptPayloadLegacy(blob string, passphrase []byte) (string, error) {
	salt, nonce, ciphertext, err := parseBlob(blob, blobVersionLegacy)
	if err != nil {
		return "", err
	}

	key := pbkdf2.Key(passphrase, salt, legacyPBKDF2Iterations, keyLen, sha256.New)
	return openPayload(key, nonce, ciphertext)
}

// encryptPayloadLegacy produces a pv1 blob. The application never writes
// these anymore; it exists so tests can pin the legacy read path.
func (p *passphraseCipher) encryptPayloadLegacy(plaintext string, passphrase []byte) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key(passphrase, salt, legacyPBKDF2Iterations, keyLen, sha256.New)

	gcm, err := aeadForKey(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	return strings.Join([]string{
		blobVersionLegacy,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, "$"), nil
}

// parseBlob splits an encoded payload and checks its version marker. Every
// malformation maps to ErrDecryptionFailure: the caller must not be able to
// distinguish a wrong passphrase from a mangled file.
func parseBlob(blob, wantVersion string) (salt, nonce, ciphertext []byte, err error) {
	parts := strings.Split(strings.TrimSpace(blob), "$")
	if len(parts) != 4 || parts[0] != wantVersion {
		return nil, nil, nil, ErrDecryptionFailure
	}

	salt, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, nil, ErrDecryptionFailure
	}
	nonce, err = base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, nil, nil, ErrDecryptionFailure
	}
	ciphertext, err = base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, nil, nil, ErrDecryptionFailure
	}

	return salt, nonce, ciphertext, nil
}

// openPayload decrypts and verifies the authentication tag.
func openPayload(key, nonce, ciphertext []byte) (string, error) {
	gcm, err := aeadForKey(key)
	if err != nil {
		return "", err
	}
	if len(nonce) != gcm.NonceSize() {
		return "", ErrDecryptionFailure
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailure
	}
	return string(plaintext), nil
}

func aeadForKey(key []byte) (cipher.AEAD, error) {
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
