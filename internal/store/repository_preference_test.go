package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalikhov/passvault/internal/logger"
)

func newMockPrefs(t *testing.T) (PreferenceRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop()}
	return NewPreferenceRepository(db, logger.Nop()), mock
}

// TestPreference_GetSet verifies the read and upsert paths.
func TestPreference_GetSet(t *testing.T) {
	prefs, mock := newMockPrefs(t)

	mock.ExpectExec("INSERT INTO preferences (key,value) VALUES (?,?) ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		WithArgs(PrefLastBackupAt, "1700000000000").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, prefs.Set(context.Background(), PrefLastBackupAt, "1700000000000"))

	mock.ExpectQuery("SELECT value FROM preferences WHERE key = ?").
		WithArgs(PrefLastBackupAt).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1700000000000"))

	value, err := prefs.Get(context.Background(), PrefLastBackupAt)
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPreference_GetMissing verifies the not-found mapping.
func TestPreference_GetMissing(t *testing.T) {
	prefs, mock := newMockPrefs(t)

	mock.ExpectQuery("SELECT value FROM preferences WHERE key = ?").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := prefs.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPreference_Delete verifies deleting, including a missing key.
func TestPreference_Delete(t *testing.T) {
	prefs, mock := newMockPrefs(t)

	mock.ExpectExec("DELETE FROM preferences WHERE key = ?").
		WithArgs(PrefBackupPassphrase).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, prefs.Delete(context.Background(), PrefBackupPassphrase))
	assert.NoError(t, mock.ExpectationsWereMet())
}
