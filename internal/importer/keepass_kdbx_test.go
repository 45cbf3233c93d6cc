package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobischo/gokeepasslib/v3"
	"github.com/tobischo/gokeepasslib/v3/wrappers"
)

func plainValue(key, value string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{Key: key, Value: gokeepasslib.V{Content: value}}
}

func protectedValue(key, value string) gokeepasslib.ValueData {
	return gokeepasslib.ValueData{
		Key:   key,
		Value: gokeepasslib.V{Content: value, Protected: wrappers.NewBoolWrapper(true)},
	}
}

func fullEntry(title, username, password, notes string) gokeepasslib.Entry {
	entry := gokeepasslib.NewEntry()
	entry.Values = append(entry.Values,
		plainValue("Title", title),
		plainValue("UserName", username),
		protectedValue("Password", password),
		plainValue("Notes", notes),
	)
	return entry
}

// buildKDBX encodes a database with the given entries in its root group,
// locked with the given master passphrase.
func buildKDBX(t *testing.T, passphrase string, entries ...gokeepasslib.Entry) []byte {
	t.Helper()

	group := gokeepasslib.NewGroup()
	group.Name = "Root"
	group.Entries = append(group.Entries, entries...)

	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(passphrase)
	db.Content.Root = &gokeepasslib.RootData{Groups: []gokeepasslib.Group{group}}

	require.NoError(t, db.LockProtectedEntries())

	var buf bytes.Buffer
	require.NoError(t, gokeepasslib.NewEncoder(&buf).Encode(db))
	return buf.Bytes()
}

// TestKDBX_RoundTrip verifies that a well-formed database maps every entry
// of the root group.
func TestKDBX_RoundTrip(t *testing.T) {
	raw := buildKDBX(t, "master-pass",
		fullEntry("GitHub", "alice", "secret123", "work"),
		fullEntry("Bank", "bob", "hunter2", ""),
	)

	imp := NewKeePassKDBXImporter("master-pass")
	records, err := imp.Parse(raw)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "GitHub", records[0].Title)
	assert.Equal(t, "alice", records[0].Username)
	assert.Equal(t, "secret123", records[0].Password)
	assert.Equal(t, "work", records[0].Notes)
	assert.NotNil(t, records[0].CreatedAt)
	assert.Equal(t, "Bank", records[1].Title)
}

// TestKDBX_WrongPassphrase verifies the whole import fails when the
// database cannot be opened.
func TestKDBX_WrongPassphrase(t *testing.T) {
	raw := buildKDBX(t, "right", fullEntry("A", "u", "p", "n"))

	imp := NewKeePassKDBXImporter("wrong")
	_, err := imp.Parse(raw)
	assert.ErrorIs(t, err, ErrMalformedDatabase)
}

// TestKDBX_NotAKDBXFile verifies garbage input fails as malformed.
func TestKDBX_NotAKDBXFile(t *testing.T) {
	imp := NewKeePassKDBXImporter("any")
	_, err := imp.Parse([]byte("Title,UserName,Password\nGitHub,alice,pw"))
	assert.ErrorIs(t, err, ErrMalformedDatabase)
}

// TestKDBX_MissingMandatoryFieldIsFatal verifies the all-or-nothing policy:
// one entry without a Notes value sinks the entire import even though the
// other entry is fine.
func TestKDBX_MissingMandatoryFieldIsFatal(t *testing.T) {
	broken := gokeepasslib.NewEntry()
	broken.Values = append(broken.Values,
		plainValue("Title", "Broken"),
		plainValue("UserName", "mallory"),
		protectedValue("Password", "pw"),
		// Notes deliberately absent
	)

	raw := buildKDBX(t, "master",
		fullEntry("Fine", "alice", "pw", "n"),
		broken,
	)

	imp := NewKeePassKDBXImporter("master")
	_, err := imp.Parse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDatabase)
	assert.Contains(t, err.Error(), "Notes")
}

// TestKDBX_BlankPasswordEntryFiltered verifies a present-but-blank password
// filters the entry rather than failing the import.
func TestKDBX_BlankPasswordEntryFiltered(t *testing.T) {
	raw := buildKDBX(t, "master",
		fullEntry("NoSecret", "alice", "", "n"),
		fullEntry("HasSecret", "bob", "pw", "n"),
	)

	imp := NewKeePassKDBXImporter("master")
	records, err := imp.Parse(raw)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "HasSecret", records[0].Title)
}
