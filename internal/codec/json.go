// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/msalikhov/passvault/models"
)

// jsonCodec serializes records as a JSON array of objects carrying the full
// field set, including the envelope ciphertext/IV pair. Such a backup is
// meaningful only together with the envelope key (same-device restore) or
// when wrapped by the passphrase cipher.
type jsonCodec struct{}

// Serialize implements [Codec]. Records are marshalled one by one so a
// single bad record cannot sink the batch.
func (c *jsonCodec) Serialize(records []models.CredentialRecord) models.ExportResult {
	result := models.ExportResult{TotalCount: len(records)}

	encoded := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			result.FailedEntries = append(result.FailedEntries, record.Title)
			continue
		}
		encoded = append(encoded, raw)
		result.SuccessCount++
	}

	payload, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		// Assembling pre-marshalled fragments cannot realistically fail;
		// treat it as a whole-batch failure if it ever does.
		result.SuccessCount = 0
		result.FailedEntries = titlesOf(records)
		return result
	}

	result.Payload = string(payload)
	return result
}

// Deserialize implements [Codec].
func (c *jsonCodec) Deserialize(text string) ([]models.CredentialRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	var records []models.CredentialRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormat, "not a JSON backup")
	}

	return records, nil
}

func titlesOf(records []models.CredentialRecord) []string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	return titles
}
