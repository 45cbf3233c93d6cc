// SPDX-License-Identifier: Apache-2.0

package models

// ImportRecord is the transient intermediate shape produced by a format
// importer before it becomes a CredentialRecord. The password is plaintext
// here; it is encrypted by the envelope cipher at the moment the record is
// mapped to a CredentialRecord, and never persisted in this form.
//
// Importers filter out records with a blank password, so Password is never
// empty on a record that reaches the orchestrator.
type ImportRecord struct {
	Title    string
	Username string
	Password string
	Notes    string

	// CreatedAt and UpdatedAt are epoch milliseconds. Nil when the foreign
	// export carried no usable timestamp.
	CreatedAt *int64
	UpdatedAt *int64
}
