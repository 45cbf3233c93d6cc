// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/logger"
)

// Storages aggregates every repository the application uses, all sharing
// one sqlite connection.
type Storages struct {
	Credentials CredentialRepository
	Preferences PreferenceRepository

	db *DB
}

// NewStorages opens the sqlite database from cfg, runs pending migrations,
// and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect local database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate local database: %w", err)
	}

	return &Storages{
		Credentials: NewCredentialRepository(db, log),
		Preferences: NewPreferenceRepository(db, log),
		db:          db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
