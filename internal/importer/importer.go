// SPDX-License-Identifier: Apache-2.0

// Package importer translates foreign password-manager export formats into
// the common ImportRecord shape. One Importer exists per format; all of
// them tolerate and ignore unrecognized columns and fields, and none of
// them ever lets a blank-password record through.
package importer

import (
	"fmt"
	"time"

	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/models"
)

// Importer parses one foreign export format.
type Importer interface {
	// Parse normalizes raw file content into import records. Formats
	// differ in failure policy: CSV-like inputs skip unusable rows,
	// while the KDBX binary path aborts on the first malformed entry.
	Parse(raw []byte) ([]models.ImportRecord, error)
}

// ForSource returns the importer for source. The KDBX importer needs the
// database's master passphrase; the others ignore it.
func ForSource(source models.ImportSource, masterPassphrase string) (Importer, error) {
	switch source {
	case models.ImportSourceBitwarden:
		return NewBitwardenImporter(), nil
	case models.ImportSourceKeePassCSV:
		return NewKeePassCSVImporter(), nil
	case models.ImportSourceKeePassKDBX:
		return NewKeePassKDBXImporter(masterPassphrase), nil
	default:
		return nil, fmt.Errorf("%w: unknown import source %q", ErrFormat, source)
	}
}

// MapToEntries converts import records into credential records, encrypting
// each plaintext password with the envelope cipher. The plaintext never
// reaches storage. Timestamps missing from the foreign export default to
// the mapping time.
func MapToEntries(records []models.ImportRecord, envelope crypto.EnvelopeCipher) ([]models.CredentialRecord, error) {
	now := time.Now().UnixMilli()

	entries := make([]models.CredentialRecord, 0, len(records))
	for _, record := range records {
		ciphertext, iv, err := envelope.Encrypt(record.Password)
		if err != nil {
			return nil, fmt.Errorf("encrypt imported password %q: %w", record.Title, err)
		}

		createdAt := now
		if record.CreatedAt != nil {
			createdAt = *record.CreatedAt
		}
		updatedAt := now
		if record.UpdatedAt != nil {
			updatedAt = *record.UpdatedAt
		}

		entries = append(entries, models.CredentialRecord{
			Title:          record.Title,
			Username:       record.Username,
			PasswordCipher: ciphertext,
			PasswordIV:     iv,
			KeyID:          envelope.KeyID(),
			Notes:          record.Notes,
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
		})
	}

	return entries, nil
}

// epochMillis converts a foreign timestamp to epoch milliseconds. A
// malformed timestamp degrades to nil rather than failing the record.
func epochMillis(value string, layout string) *int64 {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	ms := parsed.UnixMilli()
	return &ms
}
