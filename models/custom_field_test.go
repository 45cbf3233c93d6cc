// SPDX-License-Identifier: Apache-2.0

package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomField_AssignsStableID(t *testing.T) {
	field := NewCustomField("security question", "first pet", true, 0)

	_, err := uuid.Parse(field.ID)
	require.NoError(t, err, "field ID should be a valid UUID")

	assert.Equal(t, "security question", field.Name)
	assert.Equal(t, "first pet", field.Value)
	assert.True(t, field.IsSecret)

	other := NewCustomField("security question", "first pet", true, 1)
	assert.NotEqual(t, field.ID, other.ID, "every field gets its own ID")
}

func TestCustomField_MaskedValue(t *testing.T) {
	t.Run("secret values render as a fixed-width mask", func(t *testing.T) {
		short := NewCustomField("pin", "12", true, 0)
		long := NewCustomField("recovery", "a very long recovery phrase", true, 1)

		assert.Equal(t, "••••••••", short.MaskedValue())
		assert.Equal(t, short.MaskedValue(), long.MaskedValue(),
			"mask must not leak the secret's length")
	})

	t.Run("plain values render as-is", func(t *testing.T) {
		field := NewCustomField("url", "https://example.com", false, 0)
		assert.Equal(t, "https://example.com", field.MaskedValue())
	})
}
