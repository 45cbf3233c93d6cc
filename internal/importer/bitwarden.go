// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/msalikhov/passvault/models"
)

// bitwardenTypeLogin is the item type Bitwarden assigns to login entries.
// Cards, identities and secure notes carry other values and are skipped.
const bitwardenTypeLogin = 1

type bitwardenExport struct {
	Items []bitwardenItem `json:"items"`
}

type bitwardenItem struct {
	Type         int             `json:"type"`
	Name         string          `json:"name"`
	Notes        string          `json:"notes"`
	Login        *bitwardenLogin `json:"login"`
	CreationDate string          `json:"creationDate"`
	RevisionDate string          `json:"revisionDate"`
}

type bitwardenLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bitwardenImporter reads Bitwarden's unencrypted JSON export: a document
// with a top-level item list.
type bitwardenImporter struct{}

// NewBitwardenImporter constructs the Bitwarden JSON [Importer].
func NewBitwardenImporter() Importer {
	return &bitwardenImporter{}
}

// Parse implements [Importer]. Only login items with a non-blank password
// are retained. Timestamps are ISO-8601; a malformed timestamp degrades to
// a nil timestamp, never to a failed item.
func (i *bitwardenImporter) Parse(raw []byte) ([]models.ImportRecord, error) {
	var export bitwardenExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("%w: not a Bitwarden JSON export", ErrFormat)
	}

	records := make([]models.ImportRecord, 0, len(export.Items))
	for _, item := range export.Items {
		if item.Type != bitwardenTypeLogin || item.Login == nil {
			continue
		}
		if strings.TrimSpace(item.Login.Password) == "" {
			continue
		}

		records = append(records, models.ImportRecord{
			Title:     item.Name,
			Username:  item.Login.Username,
			Password:  item.Login.Password,
			Notes:     item.Notes,
			CreatedAt: epochMillis(item.CreationDate, time.RFC3339),
			UpdatedAt: epochMillis(item.RevisionDate, time.RFC3339),
		})
	}

	return records, nil
}
