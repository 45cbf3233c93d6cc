package service

import (
	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/store"
	"github.com/msalikhov/passvault/internal/validators"
)

type Services struct {
	Backup BackupService
	Unlock UnlockService
}

func NewServices(
	storages *store.Storages,
	envelope crypto.EnvelopeCipher,
	passphraseCipher crypto.PassphraseCipher,
	biometric BiometricAuthenticator,
	cfg *config.Config,
	log *logger.Logger,
) *Services {
	validator := validators.NewVaultValidator()

	return &Services{
		Backup: NewBackupService(
			storages.Credentials,
			storages.Preferences,
			envelope,
			passphraseCipher,
			validator,
			biometric,
			cfg.Security,
			cfg.Storage.Backups.Dir,
			log,
		),
		Unlock: NewUnlockService(storages.Preferences, envelope, validator, biometric, log),
	}
}
