// SPDX-License-Identifier: Apache-2.0

package models

// CredentialRecord is a stored vault entry. The password is kept encrypted
// at rest: PasswordCipher and PasswordIV are produced together by the
// envelope cipher and must always be persisted and read as a pair.
//
// Records are owned by the storage layer; services operate on transient
// copies and never mutate a record in place across goroutines.
type CredentialRecord struct {
	// ID is the stable identifier assigned by the store on insert.
	ID int64 `json:"id"`

	// Title is the display name of the entry. Never empty.
	Title string `json:"title"`

	// Username is the account login, if any.
	Username string `json:"username,omitempty"`

	// PasswordCipher is the base64-encoded AES-GCM ciphertext of the
	// password. Meaningless without PasswordIV and the envelope key.
	PasswordCipher string `json:"passwordCipher"`

	// PasswordIV is the base64-encoded initialization vector paired with
	// PasswordCipher. A record is never persisted with only one of the two.
	PasswordIV string `json:"passwordIv"`

	// KeyID names the envelope key generation that produced PasswordCipher,
	// so ciphertext from rotated keys stays decryptable.
	KeyID string `json:"keyId,omitempty"`

	// Notes is free-form text attached to the entry.
	Notes string `json:"notes,omitempty"`

	// Category is a denormalized label; no foreign-key relationship exists.
	Category string `json:"category,omitempty"`

	// CustomFields holds user-defined fields attached to this entry.
	CustomFields []CustomField `json:"customFields,omitempty"`

	// CreatedAt and UpdatedAt are epoch milliseconds, set at write time.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
