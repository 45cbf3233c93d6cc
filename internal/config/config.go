// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Config is the top-level configuration container for the passvault
// application. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// App holds application-level settings such as the envelope key alias
	// and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local credential database and
	// the backup file destination.
	Storage Storage `envPrefix:"STORAGE_"`

	// Security holds the explicit security flags that govern export
	// behavior. These are passed as values, never read from implicit
	// global preference state.
	Security Security `envPrefix:"SECURITY_"`

	// Crypto holds the passphrase KDF tuning parameters.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Workers holds configuration for background jobs such as the
	// periodic auto-backup.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// KeyAlias names the envelope key inside the keystore. Injected here
	// explicitly so the cipher carries no hidden global alias.
	// Env: APP_KEY_ALIAS
	KeyAlias string `env:"KEY_ALIAS"`

	// KeystoreDir is the directory holding the keystore's key entries.
	// Env: APP_KEYSTORE_DIR
	KeystoreDir string `env:"KEYSTORE_DIR"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all persistence used by the
// application.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`

	// Backups holds the backup file destination settings.
	Backups Backups `envPrefix:"BACKUPS_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// DSN is the sqlite file path (or ":memory:" for tests).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Backups holds file-system settings for backup output.
type Backups struct {
	// Dir is the directory backup files are written to.
	// Env: STORAGE_BACKUPS_DIR
	Dir string `env:"DIR"`
}

// Security is the explicit configuration struct for export policy. The
// fields mirror what the settings screen toggles; the orchestrator receives
// this struct by value instead of reading preference keys on its own.
type Security struct {
	// RequireAuthForExport demands a fresh device authentication before
	// every export when true.
	// Env: SECURITY_REQUIRE_AUTH_FOR_EXPORT
	RequireAuthForExport bool `env:"REQUIRE_AUTH_FOR_EXPORT"`

	// EncryptBackups passphrase-encrypts backup payloads when true.
	// Env: SECURITY_ENCRYPT_BACKUPS
	EncryptBackups bool `env:"ENCRYPT_BACKUPS"`

	// ExportFormat selects the native backup serialization: "json" or "csv".
	// Env: SECURITY_EXPORT_FORMAT
	ExportFormat string `env:"EXPORT_FORMAT"`
}

// Crypto holds Argon2id tuning for the passphrase-derived cipher. The
// defaults target the low hundreds of milliseconds on a mobile-class CPU.
type Crypto struct {
	// ArgonTime is the Argon2id time cost (iterations).
	// Env: CRYPTO_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemoryKiB is the Argon2id memory cost in KiB.
	// Env: CRYPTO_ARGON_MEMORY_KIB
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`

	// ArgonThreads is the Argon2id parallelism degree.
	// Env: CRYPTO_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AutoBackup enables the periodic backup job.
	// Env: WORKERS_AUTO_BACKUP
	AutoBackup bool `env:"AUTO_BACKUP"`

	// BackupInterval is the period between automatic backups (e.g. "24h").
	// Env: WORKERS_BACKUP_INTERVAL
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`
}

// GetConfig loads the full application configuration by merging, in order
// of precedence: environment variables, command-line flags, the optional
// JSON file, and finally the built-in defaults.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in fallback configuration. It is merged last,
// so it only fills fields no other source set.
func defaults() *Config {
	return &Config{
		App: App{
			KeyAlias:    "passvault-master",
			KeystoreDir: ".passvault/keystore",
		},
		Storage: Storage{
			DB:      DB{DSN: "passvault.db"},
			Backups: Backups{Dir: "backups"},
		},
		Security: Security{
			ExportFormat: "json",
		},
		Crypto: Crypto{
			ArgonTime:      1,
			ArgonMemoryKiB: 64 * 1024, // 64 MiB
			ArgonThreads:   4,
		},
		Workers: Workers{
			BackupInterval: 24 * time.Hour,
		},
	}
}

// validate checks cross-field consistency of the merged configuration.
func (c *Config) validate() error {
	if c.App.KeyAlias == "" || c.App.KeystoreDir == "" {
		return ErrInvalidAppConfigs
	}
	if c.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if c.Security.ExportFormat != "json" && c.Security.ExportFormat != "csv" {
		return ErrInvalidSecurityConfigs
	}
	if c.Crypto.ArgonTime == 0 || c.Crypto.ArgonMemoryKiB == 0 || c.Crypto.ArgonThreads == 0 {
		return ErrInvalidCryptoConfigs
	}
	if c.Workers.AutoBackup && c.Workers.BackupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}
