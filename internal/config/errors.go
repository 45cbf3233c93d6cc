package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an empty key alias or keystore directory).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecurityConfigs indicates invalid security settings
	// (for example, an unknown export format).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidCryptoConfigs indicates invalid KDF tuning parameters
	// (all Argon2id costs must be non-zero).
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, auto-backup enabled with a zero interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
