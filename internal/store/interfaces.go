// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/msalikhov/passvault/models"
)

// CredentialRepository is the key-indexed credential table the vault
// subsystem operates on. All writes are single-row; there are no
// multi-row transactions, so a batch caller gets no atomicity across
// records.
type CredentialRepository interface {
	// Insert persists a new record and returns it with the assigned ID.
	// Duplicate titles are allowed; this is never an upsert.
	Insert(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error)

	// Update replaces the stored record with the same ID. Returns
	// ErrCredentialNotFound when no such record exists.
	Update(ctx context.Context, record models.CredentialRecord) error

	// Delete removes the record with the given ID. Returns
	// ErrCredentialNotFound when no such record exists.
	Delete(ctx context.Context, id int64) error

	// GetByID returns one record or ErrCredentialNotFound.
	GetByID(ctx context.Context, id int64) (models.CredentialRecord, error)

	// GetAll returns every record ordered by ID.
	GetAll(ctx context.Context) ([]models.CredentialRecord, error)

	// Search returns records whose title, username, or notes contain
	// query, ordered by ID.
	Search(ctx context.Context, query string) ([]models.CredentialRecord, error)
}

// PreferenceRepository is a simple key-value store for settings and small
// secrets that are already ciphertext (the encrypted PIN, the backup
// passphrase preference flags).
type PreferenceRepository interface {
	// Get returns the stored value or ErrPreferenceNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes or overwrites the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the value under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// Preference keys used across the application.
const (
	// PrefPinCipher / PrefPinIV / PrefPinKeyID hold the envelope-encrypted
	// unlock PIN. Always written and read as a group.
	PrefPinCipher = "pin_cipher"
	PrefPinIV     = "pin_iv"
	PrefPinKeyID  = "pin_key_id"

	// PrefBackupPassphrase holds the configured backup passphrase.
	PrefBackupPassphrase = "backup_passphrase"

	// PrefLastBackupAt holds the epoch-millisecond timestamp of the last
	// successful export, stamped by the auto-backup worker.
	PrefLastBackupAt = "last_backup_at"
)
