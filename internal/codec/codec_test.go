package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalikhov/passvault/models"
)

func sampleRecords() []models.CredentialRecord {
	return []models.CredentialRecord{
		{
			ID:             1,
			Title:          "GitHub",
			Username:       "alice",
			PasswordCipher: "Y2lwaGVydGV4dA==",
			PasswordIV:     "aXZpdml2aXZpdg==",
			KeyID:          "passvault-master",
			Notes:          "work account",
			Category:       "Development",
			CreatedAt:      1196676930000,
			UpdatedAt:      1196676930000,
		},
		{
			ID:             2,
			Title:          "Bank, \"personal\"",
			Username:       "bob",
			PasswordCipher: "b3RoZXJjaXBoZXI=",
			PasswordIV:     "bm9uY2Vub25jZQ==",
			KeyID:          "passvault-master",
			Notes:          "notes with\nnewline and, comma",
			CreatedAt:      1200407400000,
			UpdatedAt:      1200407400000,
		},
	}
}

// TestForFormat verifies codec selection by enum value.
func TestForFormat(t *testing.T) {
	jc, err := ForFormat(models.BackupFormatJSON)
	require.NoError(t, err)
	assert.IsType(t, &jsonCodec{}, jc)

	cc, err := ForFormat(models.BackupFormatCSV)
	require.NoError(t, err)
	assert.IsType(t, &csvCodec{}, cc)

	_, err = ForFormat(models.BackupFormat("xml"))
	assert.ErrorIs(t, err, ErrFormat)
}

// TestJSON_RoundTrip verifies serialize/deserialize equality for the full
// field set, ciphertext and IV included.
func TestJSON_RoundTrip(t *testing.T) {
	c := &jsonCodec{}
	records := sampleRecords()

	result := c.Serialize(records)
	require.True(t, result.AllSucceeded())
	assert.Equal(t, len(records), result.SuccessCount)
	assert.Equal(t, len(records), result.TotalCount)
	assert.Empty(t, result.FailedEntries)

	got, err := c.Deserialize(result.Payload)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

// TestJSON_UnknownFieldsIgnored verifies forward compatibility: extra JSON
// fields do not fail the parse, and absent optional fields default to zero.
func TestJSON_UnknownFieldsIgnored(t *testing.T) {
	c := &jsonCodec{}

	got, err := c.Deserialize(`[
		{"title": "Minimal", "passwordCipher": "Y3Q=", "passwordIv": "aXY=", "futureField": 42}
	]`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Minimal", got[0].Title)
	assert.Equal(t, "Y3Q=", got[0].PasswordCipher)
	assert.Empty(t, got[0].Username)
	assert.Zero(t, got[0].CreatedAt)
}

// TestJSON_FormatErrors verifies the ErrFormat paths.
func TestJSON_FormatErrors(t *testing.T) {
	c := &jsonCodec{}

	_, err := c.Deserialize("   ")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = c.Deserialize("title,username\nGitHub,alice")
	assert.ErrorIs(t, err, ErrFormat)
}

// TestCSV_RoundTrip verifies that every column, including ciphertext and IV,
// survives a CSV round trip verbatim — with embedded commas, quotes and
// newlines in play.
func TestCSV_RoundTrip(t *testing.T) {
	c := &csvCodec{}
	records := sampleRecords()

	result := c.Serialize(records)
	require.True(t, result.AllSucceeded())

	got, err := c.Deserialize(result.Payload)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].Title, got[i].Title)
		assert.Equal(t, records[i].Username, got[i].Username)
		assert.Equal(t, records[i].PasswordCipher, got[i].PasswordCipher)
		assert.Equal(t, records[i].PasswordIV, got[i].PasswordIV)
		assert.Equal(t, records[i].KeyID, got[i].KeyID)
		assert.Equal(t, records[i].Notes, got[i].Notes)
		assert.Equal(t, records[i].CreatedAt, got[i].CreatedAt)
		assert.Equal(t, records[i].UpdatedAt, got[i].UpdatedAt)
	}
}

// TestCSV_HeaderNameMatching verifies that columns are located by header
// name, not position, and that unknown columns are ignored.
func TestCSV_HeaderNameMatching(t *testing.T) {
	c := &csvCodec{}

	got, err := c.Deserialize(
		"vendor,passwordIv,title,passwordCipher\n" +
			"acme,aXY=,Shuffled,Y3Q=\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Shuffled", got[0].Title)
	assert.Equal(t, "Y3Q=", got[0].PasswordCipher)
	assert.Equal(t, "aXY=", got[0].PasswordIV)
}

// TestCSV_MissingMandatoryColumns verifies ErrFormat when title or
// passwordCipher cannot be located.
func TestCSV_MissingMandatoryColumns(t *testing.T) {
	c := &csvCodec{}

	_, err := c.Deserialize("username,notes\nalice,hello\n")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = c.Deserialize("title,notes\nGitHub,hello\n")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = c.Deserialize("")
	assert.ErrorIs(t, err, ErrFormat)
}

// TestCSV_ShortRows verifies that rows shorter than the header parse with
// empty values instead of failing.
func TestCSV_ShortRows(t *testing.T) {
	c := &csvCodec{}

	got, err := c.Deserialize("title,passwordCipher,notes\nOnlyTitle,Y3Q=\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "OnlyTitle", got[0].Title)
	assert.Empty(t, got[0].Notes)
}

// TestSerialize_EmptyBatch verifies the degenerate export.
func TestSerialize_EmptyBatch(t *testing.T) {
	for _, format := range []models.BackupFormat{models.BackupFormatJSON, models.BackupFormatCSV} {
		c, err := ForFormat(format)
		require.NoError(t, err)

		result := c.Serialize(nil)
		assert.True(t, result.AllSucceeded())
		assert.Zero(t, result.TotalCount)
		assert.NotEmpty(t, result.Payload) // header row / empty array
	}
}
