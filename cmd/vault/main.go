package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/service"
	"github.com/msalikhov/passvault/internal/store"
	"github.com/msalikhov/passvault/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewFileLogger("passvault")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storages")
	}
	defer storages.Close()

	keystore, err := crypto.NewFileKeyStore(cfg.App.KeystoreDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open keystore")
	}

	envelope := crypto.NewEnvelopeCipher(keystore, cfg.App.KeyAlias)
	if err = envelope.EnsureKeyExists(false); err != nil {
		log.Fatal().Err(err).Msg("provision envelope key")
	}

	passphraseCipher := crypto.NewPassphraseCipher(
		cfg.Crypto.ArgonTime, cfg.Crypto.ArgonMemoryKiB, cfg.Crypto.ArgonThreads,
	)

	// The biometric authenticator is a platform binding; the headless
	// process runs without one and the unlock gate falls back to PIN.
	services := service.NewServices(storages, envelope, passphraseCipher, nil, cfg, log)

	jobs := workers.NewWorkers(cfg.Workers, services.Backup, storages.Preferences, log)
	jobs.Run()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	jobs.Stop()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
