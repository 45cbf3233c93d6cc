// SPDX-License-Identifier: Apache-2.0

// Package codec serializes collections of credential records to and from
// the native backup formats. One Codec implementation exists per format;
// callers select one by passing the format enum to ForFormat, so adding a
// format is additive rather than another branch at every call site.
package codec

import (
	"fmt"

	"github.com/msalikhov/passvault/models"
)

// Codec is the strategy interface for one backup serialization format.
type Codec interface {
	// Serialize converts records into payload text. Per-record failures
	// are isolated: the failing record's title is collected into
	// FailedEntries and the rest of the batch continues.
	Serialize(records []models.CredentialRecord) models.ExportResult

	// Deserialize parses payload text back into records. Unknown or
	// missing optional fields default to zero values; ErrFormat is
	// returned when the text is blank or the mandatory title/password
	// columns cannot be located.
	Deserialize(text string) ([]models.CredentialRecord, error)
}

// ForFormat returns the codec for format.
func ForFormat(format models.BackupFormat) (Codec, error) {
	switch format {
	case models.BackupFormatJSON:
		return &jsonCodec{}, nil
	case models.BackupFormatCSV:
		return &csvCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, format)
	}
}
