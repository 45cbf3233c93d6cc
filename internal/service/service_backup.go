package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/msalikhov/passvault/internal/codec"
	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/importer"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/store"
	"github.com/msalikhov/passvault/internal/validators"
	"github.com/msalikhov/passvault/models"
)

type backupService struct {
	credentials   store.CredentialRepository
	preferences   store.PreferenceRepository
	envelope      crypto.EnvelopeCipher
	passphrase    crypto.PassphraseCipher
	validator     validators.Validator
	authenticator BiometricAuthenticator
	security      config.Security
	backupsDir    string
	logger        *logger.Logger

	mu    sync.Mutex
	state models.ImportState
}

func NewBackupService(
	credentials store.CredentialRepository,
	preferences store.PreferenceRepository,
	envelope crypto.EnvelopeCipher,
	passphraseCipher crypto.PassphraseCipher,
	validator validators.Validator,
	authenticator BiometricAuthenticator,
	security config.Security,
	backupsDir string,
	log *logger.Logger,
) BackupService {
	return &backupService{
		credentials:   credentials,
		preferences:   preferences,
		envelope:      envelope,
		passphrase:    passphraseCipher,
		validator:     validator,
		authenticator: authenticator,
		security:      security,
		backupsDir:    backupsDir,
		logger:        log,
		state:         models.ImportState{Phase: models.ImportIdle},
	}
}

func (b *backupService) Export(ctx context.Context, dst io.Writer) (models.ExportResult, error) {
	if b.security.RequireAuthForExport {
		if err := b.authenticateForExport(ctx); err != nil {
			return models.ExportResult{}, err
		}
	}

	if !b.envelope.IsKeystoreValid() {
		return models.ExportResult{}, ErrKeystoreInvalid
	}

	records, err := b.credentials.GetAll(ctx)
	if err != nil {
		return models.ExportResult{}, fmt.Errorf("fetch records for export: %w", err)
	}

	c, err := codec.ForFormat(models.BackupFormat(b.security.ExportFormat))
	if err != nil {
		return models.ExportResult{}, fmt.Errorf("select export codec: %w", err)
	}

	result := c.Serialize(records)
	if !result.AllSucceeded() {
		b.logger.Warn().
			Int("failed", len(result.FailedEntries)).
			Int("total", result.TotalCount).
			Msg("some records were skipped during export")
	}

	payload := result.Payload
	if b.security.EncryptBackups {
		pass, err := b.backupPassphrase(ctx)
		if err != nil {
			return models.ExportResult{}, err
		}
		payload, err = b.passphrase.EncryptPayload(payload, []byte(pass))
		if err != nil {
			return models.ExportResult{}, fmt.Errorf("encrypt backup payload: %w", err)
		}
	}

	if _, err := io.WriteString(dst, payload); err != nil {
		return models.ExportResult{}, fmt.Errorf("write backup payload: %w", err)
	}

	return result, nil
}

func (b *backupService) ExportToFile(ctx context.Context) (string, models.ExportResult, error) {
	if err := os.MkdirAll(b.backupsDir, 0o700); err != nil {
		return "", models.ExportResult{}, fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(b.backupsDir, b.backupFileName(time.Now()))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", models.ExportResult{}, fmt.Errorf("create backup file: %w", err)
	}

	result, err := b.Export(ctx, file)
	closeErr := file.Close()
	if err != nil {
		_ = os.Remove(path)
		return "", result, err
	}
	if closeErr != nil {
		return "", result, fmt.Errorf("close backup file: %w", closeErr)
	}

	return path, result, nil
}

func (b *backupService) backupFileName(now time.Time) string {
	name := fmt.Sprintf("passvault-%s.%s", now.Format("20060102-150405"), b.security.ExportFormat)
	if b.security.EncryptBackups {
		name += ".enc"
	}
	return name
}

// authenticateForExport demands a fresh device authentication event before
// the vault leaves the device. A device that cannot authenticate at all
// blocks the export rather than silently waiving the requirement.
func (b *backupService) authenticateForExport(ctx context.Context) error {
	if b.authenticator == nil || !b.authenticator.CanAuthenticate() {
		return ErrBiometricUnavailable
	}
	if err := b.authenticator.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate for export: %w", err)
	}
	return nil
}

// backupPassphrase loads the configured backup passphrase. Encryption being
// enabled with no passphrase set is a setup error surfaced to the user, not
// something to silently fall back from.
func (b *backupService) backupPassphrase(ctx context.Context) (string, error) {
	pass, err := b.preferences.Get(ctx, store.PrefBackupPassphrase)
	if errors.Is(err, store.ErrPreferenceNotFound) {
		return "", ErrPassphraseMissing
	}
	if err != nil {
		return "", fmt.Errorf("load backup passphrase: %w", err)
	}
	if pass == "" {
		return "", ErrPassphraseMissing
	}
	return pass, nil
}

func (b *backupService) Import(ctx context.Context, src io.Reader, opts ImportOptions) (int, error) {
	b.setState(models.ImportState{Phase: models.ImportLoading})

	count, err := b.runImport(ctx, src, opts)
	if err != nil {
		b.setState(models.ImportState{Phase: models.ImportError, Reason: UserMessage(err)})
		return 0, err
	}

	b.setState(models.ImportState{Phase: models.ImportSuccess, Count: count})
	return count, nil
}

func (b *backupService) runImport(ctx context.Context, src io.Reader, opts ImportOptions) (int, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return 0, fmt.Errorf("read import payload: %w", err)
	}

	var entries []models.CredentialRecord
	if opts.Source == models.ImportSourceNative {
		entries, err = b.parseNative(raw, opts)
	} else {
		entries, err = b.parseForeign(ctx, raw, opts)
	}
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, ErrEmptyImport
	}

	// Single-row inserts, no batch transaction: records inserted before a
	// failure stay inserted.
	for _, entry := range entries {
		if _, err := b.credentials.Insert(ctx, entry); err != nil {
			return 0, fmt.Errorf("insert imported record %q: %w", entry.Title, err)
		}
	}

	b.logger.Info().Int("count", len(entries)).Str("source", string(opts.Source)).Msg("import finished")
	return len(entries), nil
}

// parseNative restores records from this application's own backup format.
// Records are inserted verbatim: ciphertext, IV, and key generation travel
// with the record, so a restore on another device keeps the data and
// surfaces ErrKeyUnavailable only when a password is actually opened.
func (b *backupService) parseNative(raw []byte, opts ImportOptions) ([]models.CredentialRecord, error) {
	text, err := b.decodePayload(string(raw), opts.Passphrase)
	if err != nil {
		return nil, err
	}

	c, err := codec.ForFormat(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("select import codec: %w", err)
	}

	records, err := c.Deserialize(text)
	if err != nil {
		return nil, fmt.Errorf("deserialize backup: %w", err)
	}
	return records, nil
}

func (b *backupService) parseForeign(ctx context.Context, raw []byte, opts ImportOptions) ([]models.CredentialRecord, error) {
	imp, err := importer.ForSource(opts.Source, opts.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("select importer: %w", err)
	}

	records, err := imp.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s export: %w", opts.Source, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if err := b.validator.Validate(ctx, records); err != nil {
		return nil, fmt.Errorf("validate imported records: %w", err)
	}

	entries, err := importer.MapToEntries(records, b.envelope)
	if err != nil {
		return nil, fmt.Errorf("map imported records: %w", err)
	}
	return entries, nil
}

// decodePayload peels the optional passphrase-encryption layer off a native
// backup. A payload without a scheme marker is plaintext no matter what the
// user typed into the passphrase field; a superfluous passphrase is ignored,
// not failed. For encrypted payloads the current scheme is tried before the
// legacy one.
func (b *backupService) decodePayload(raw, passphrase string) (string, error) {
	encrypted := strings.HasPrefix(raw, "pv2$") || strings.HasPrefix(raw, "pv1$")
	if !encrypted {
		return raw, nil
	}

	if passphrase == "" {
		return "", ErrPassphraseMissing
	}

	text, err := b.passphrase.DecryptPayload(raw, []byte(passphrase))
	if err == nil {
		return text, nil
	}

	text, legacyErr := b.passphrase.DecryptPayloadLegacy(raw, []byte(passphrase))
	if legacyErr == nil {
		return text, nil
	}

	return "", fmt.Errorf("decrypt backup payload: %w", err)
}

func (b *backupService) ImportState() models.ImportState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *backupService) ResetImportState() {
	b.setState(models.ImportState{Phase: models.ImportIdle})
}

func (b *backupService) setState(state models.ImportState) {
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()
}
