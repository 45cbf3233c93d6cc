package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFlags_AllFlags verifies that every supported flag is mapped into
// the corresponding Config field.
func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-d", "flags.db",
		"-b", "/tmp/backups",
		"-key-alias", "flag-alias",
		"-keystore-dir", "/tmp/ks",
		"-c", "cfg.json",
		"-export-format", "csv",
		"-encrypt-backups",
		"-require-auth-for-export",
		"-auto-backup",
		"-backup-interval", "6h",
	})
	require.NoError(t, err)

	assert.Equal(t, "flags.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/backups", cfg.Storage.Backups.Dir)
	assert.Equal(t, "flag-alias", cfg.App.KeyAlias)
	assert.Equal(t, "/tmp/ks", cfg.App.KeystoreDir)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "csv", cfg.Security.ExportFormat)
	assert.True(t, cfg.Security.EncryptBackups)
	assert.True(t, cfg.Security.RequireAuthForExport)
	assert.True(t, cfg.Workers.AutoBackup)
	assert.Equal(t, 6*time.Hour, cfg.Workers.BackupInterval)
}

// TestParseFlags_NoFlags verifies that an empty argument list produces an
// all-zero config without error.
func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.KeyAlias)
	assert.False(t, cfg.Security.EncryptBackups)
}

// TestParseFlags_ConfigAlias verifies that -config is accepted as an alias
// of -c.
func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "alias.json"})
	require.NoError(t, err)
	assert.Equal(t, "alias.json", cfg.JSONFilePath)
}

// TestParseFlags_UnknownFlag verifies that an unrecognized flag is an error
// rather than a silent skip.
func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-definitely-not-a-flag"})
	require.Error(t, err)
}
