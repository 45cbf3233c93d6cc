// SPDX-License-Identifier: Apache-2.0

package models

// ExportResult is the outcome of serializing a batch of credential records.
// Per-record failures are tracked by title in FailedEntries rather than
// reconciled against counts, so SuccessCount + len(FailedEntries) is not
// required to equal TotalCount.
type ExportResult struct {
	// Payload is the serialized text of all successfully exported records.
	Payload string

	// SuccessCount is the number of records serialized without error.
	SuccessCount int

	// FailedEntries lists the titles of records that failed to serialize,
	// in the order they were attempted.
	FailedEntries []string

	// TotalCount is the number of records the export attempted.
	TotalCount int
}

// AllSucceeded reports whether every attempted record was serialized.
func (r ExportResult) AllSucceeded() bool {
	return r.SuccessCount == r.TotalCount && len(r.FailedEntries) == 0
}
