package store

import (
	"database/sql"

	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
