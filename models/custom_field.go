// SPDX-License-Identifier: Apache-2.0

package models

import "github.com/google/uuid"

// CustomField is a user-defined field attached to a CredentialRecord.
// IsSecret controls masking on read paths only; the stored value is
// plaintext regardless of the flag.
type CustomField struct {
	// ID is a stable per-field identifier, assigned on creation.
	ID string `json:"id"`

	// Name is the user-visible label of the field.
	Name string `json:"name"`

	// Value is the field content, stored as-is.
	Value string `json:"value"`

	// IsSecret marks the field for masking in list and detail views.
	IsSecret bool `json:"isSecret"`

	// Metadata carries free-form key-value annotations.
	Metadata map[string]string `json:"metadata,omitempty"`

	// Order positions the field among its siblings in display.
	Order int `json:"order"`
}

// NewCustomField constructs a CustomField with a fresh stable ID.
func NewCustomField(name, value string, isSecret bool, order int) CustomField {
	return CustomField{
		ID:       uuid.NewString(),
		Name:     name,
		Value:    value,
		IsSecret: isSecret,
		Order:    order,
	}
}

// MaskedValue returns the value suitable for display: secret fields render
// as a fixed-width mask so the length of the secret is not leaked either.
func (f CustomField) MaskedValue() string {
	if f.IsSecret {
		return "••••••••"
	}
	return f.Value
}
