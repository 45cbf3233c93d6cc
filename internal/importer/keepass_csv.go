// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/msalikhov/passvault/models"
)

// KeePass CSV export column names. Columns are located by header name; the
// order KeePass writes them in is not relied on, and extra columns from
// other exporters are ignored.
const (
	keePassColTitle        = "Title"
	keePassColUserName     = "UserName"
	keePassColPassword     = "Password"
	keePassColNotes        = "Notes"
	keePassColCreationTime = "CreationTime"
	keePassColModification = "LastModificationTime"
)

// keePassCSVImporter reads KeePass CSV exports. Rows whose password trims
// to an empty string are silently dropped — not an error; that filtering is
// load-bearing behavior other components rely on.
type keePassCSVImporter struct{}

// NewKeePassCSVImporter constructs the KeePass CSV [Importer].
func NewKeePassCSVImporter() Importer {
	return &keePassCSVImporter{}
}

// Parse implements [Importer]. Empty input yields an empty list, not an
// error; the orchestrator decides what an empty import means.
func (i *keePassCSVImporter) Parse(raw []byte) ([]models.ImportRecord, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return []models.ImportRecord{}, nil
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing CSV header", ErrFormat)
	}

	index := make(map[string]int, len(header))
	for col, name := range header {
		index[strings.TrimSpace(name)] = col
	}

	field := func(row []string, name string) string {
		col, ok := index[name]
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	records := make([]models.ImportRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV row", ErrFormat)
		}

		password := field(row, keePassColPassword)
		if password == "" {
			continue // blank password: drop the row silently
		}

		records = append(records, models.ImportRecord{
			Title:     field(row, keePassColTitle),
			Username:  field(row, keePassColUserName),
			Password:  password,
			Notes:     field(row, keePassColNotes),
			CreatedAt: epochMillis(field(row, keePassColCreationTime), time.RFC3339),
			UpdatedAt: epochMillis(field(row, keePassColModification), time.RFC3339),
		})
	}

	return records, nil
}
