package service

import (
	"context"
	"io"

	"github.com/msalikhov/passvault/models"
)

// BackupService defines the contract for exporting the vault to a backup
// payload and importing records from backup files or foreign password
// manager exports.
type BackupService interface {
	// Export serializes every stored record in the configured format and
	// writes the payload to dst. When backup encryption is enabled the
	// payload is passphrase-encrypted first; a missing passphrase fails
	// with ErrPassphraseMissing. A keystore that fails its validity probe
	// fails with ErrKeystoreInvalid before anything is read.
	// The returned ExportResult reports per-record serialization failures
	// by title; a partially failed serialization is not an error.
	Export(ctx context.Context, dst io.Writer) (models.ExportResult, error)

	// ExportToFile is Export writing to a timestamp-named file in the
	// configured backup directory. Returns the created file's path.
	ExportToFile(ctx context.Context) (string, models.ExportResult, error)

	// Import reads a backup or foreign export from src and inserts the
	// resulting records. Records are always inserted, never merged with
	// existing ones. Returns the number of records imported.
	// An import that yields zero records fails with ErrEmptyImport.
	// Progress is observable via ImportState.
	Import(ctx context.Context, src io.Reader, opts ImportOptions) (int, error)

	// ImportState returns the state of the most recent import:
	// Idle -> Loading -> Success(count) | Error(reason).
	ImportState() models.ImportState

	// ResetImportState returns the import state to Idle, typically after
	// the UI has shown the terminal state.
	ResetImportState()
}

// ImportOptions selects the import pipeline for one Import call.
type ImportOptions struct {
	// Source identifies the producer of the input file. ImportSourceNative
	// goes through the codec; everything else goes through a format
	// importer.
	Source models.ImportSource

	// Format selects the codec for native imports. Ignored for foreign
	// sources.
	Format models.BackupFormat

	// Passphrase decrypts an encrypted native backup, or unlocks a KDBX
	// database. Empty means the input is treated as plaintext.
	Passphrase string
}

// UnlockService defines the contract for the vault unlock gate: PIN setup,
// PIN verification, and the optional biometric fast path.
type UnlockService interface {
	// State reports the gate's current state. On first call it is derived
	// from whether a PIN ciphertext is stored and whether the device can
	// offer biometrics.
	State(ctx context.Context) (models.LockState, error)

	// SetupPin validates the proposed PIN (4-6 digits, confirmation must
	// match) before any key material is touched, then stores the
	// envelope-encrypted PIN and unlocks the gate.
	SetupPin(ctx context.Context, setup models.PinSetup) error

	// VerifyPin decrypts the stored PIN and compares it with the entry.
	// A match unlocks the gate; a mismatch fails with ErrPinMismatch and
	// leaves the gate awaiting PIN. There is no attempt counter.
	VerifyPin(ctx context.Context, pin string) error

	// UnlockWithBiometric runs the device biometric prompt. Success
	// unlocks the gate; failure or cancellation falls back to PIN entry.
	UnlockWithBiometric(ctx context.Context) error

	// Lock returns the gate to its locked state.
	Lock(ctx context.Context) error
}

// BiometricAuthenticator abstracts the device biometric facility. The
// application only consumes this interface; platform bindings provide it.
type BiometricAuthenticator interface {
	// CanAuthenticate reports whether biometric hardware is present,
	// configured, and enrolled.
	CanAuthenticate() bool

	// Authenticate shows the biometric prompt and blocks until the user
	// succeeds, fails, or cancels. A nil return means success.
	Authenticate(ctx context.Context) error
}
