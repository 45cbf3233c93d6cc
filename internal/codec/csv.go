// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/msalikhov/passvault/models"
)

// CSV column names. Reads match columns by header name, never by position,
// and ignore columns they do not recognize.
const (
	colID             = "id"
	colTitle          = "title"
	colUsername       = "username"
	colPasswordCipher = "passwordCipher"
	colPasswordIV     = "passwordIv"
	colKeyID          = "keyId"
	colNotes          = "notes"
	colCategory       = "category"
	colCreatedAt      = "createdAt"
	colUpdatedAt      = "updatedAt"
)

var csvHeader = []string{
	colID, colTitle, colUsername, colPasswordCipher, colPasswordIV,
	colKeyID, colNotes, colCategory, colCreatedAt, colUpdatedAt,
}

// csvCodec serializes records as header-named CSV. Standard CSV quoting
// covers embedded commas, quotes and newlines; custom fields are a
// JSON-only feature and do not round-trip through this codec.
type csvCodec struct{}

// Serialize implements [Codec]. Each row is written through its own
// csv.Writer into the shared builder, so a row-level write error costs only
// that record.
func (c *csvCodec) Serialize(records []models.CredentialRecord) models.ExportResult {
	result := models.ExportResult{TotalCount: len(records)}

	var sb strings.Builder
	headerWriter := csv.NewWriter(&sb)
	if err := headerWriter.Write(csvHeader); err != nil {
		result.FailedEntries = titlesOf(records)
		return result
	}
	headerWriter.Flush()

	for _, record := range records {
		row := []string{
			strconv.FormatInt(record.ID, 10),
			record.Title,
			record.Username,
			record.PasswordCipher,
			record.PasswordIV,
			record.KeyID,
			record.Notes,
			record.Category,
			strconv.FormatInt(record.CreatedAt, 10),
			strconv.FormatInt(record.UpdatedAt, 10),
		}

		var rowBuf strings.Builder
		rowWriter := csv.NewWriter(&rowBuf)
		if err := rowWriter.Write(row); err != nil {
			result.FailedEntries = append(result.FailedEntries, record.Title)
			continue
		}
		rowWriter.Flush()
		if err := rowWriter.Error(); err != nil {
			result.FailedEntries = append(result.FailedEntries, record.Title)
			continue
		}

		sb.WriteString(rowBuf.String())
		result.SuccessCount++
	}

	result.Payload = sb.String()
	return result
}

// Deserialize implements [Codec].
func (c *csvCodec) Deserialize(text string) ([]models.CredentialRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // rows may carry extra columns

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormat, "missing CSV header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index[colTitle]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormat, "title column not found")
	}
	if _, ok := index[colPasswordCipher]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormat, "passwordCipher column not found")
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []models.CredentialRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFormat, "malformed CSV row")
		}

		id, _ := strconv.ParseInt(field(row, colID), 10, 64)
		createdAt, _ := strconv.ParseInt(field(row, colCreatedAt), 10, 64)
		updatedAt, _ := strconv.ParseInt(field(row, colUpdatedAt), 10, 64)

		records = append(records, models.CredentialRecord{
			ID:             id,
			Title:          field(row, colTitle),
			Username:       field(row, colUsername),
			PasswordCipher: field(row, colPasswordCipher),
			PasswordIV:     field(row, colPasswordIV),
			KeyID:          field(row, colKeyID),
			Notes:          field(row, colNotes),
			Category:       field(row, colCategory),
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
		})
	}

	return records, nil
}
