// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msalikhov/passvault/internal/logger"
)

// preferenceRepository is the sqlite-backed implementation of
// [PreferenceRepository]: a two-column key-value table.
type preferenceRepository struct {
	*DB
	logger *logger.Logger
}

// NewPreferenceRepository constructs a [PreferenceRepository] backed by the
// provided database connection and logger.
func NewPreferenceRepository(db *DB, logger *logger.Logger) PreferenceRepository {
	return &preferenceRepository{
		DB:     db,
		logger: logger,
	}
}

// Get implements [PreferenceRepository].
func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := qb.Select("value").From("preferences").Where("key = ?", key).ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPreferenceNotFound
		}
		log.Err(err).
			Str("func", "preferenceRepository.Get").
			Str("key", key).
			Msg("failed to read preference")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

// Set implements [PreferenceRepository].
func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := upsertPreference(key, value).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "preferenceRepository.Set").
			Str("key", key).
			Msg("failed to write preference")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete implements [PreferenceRepository].
func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := qb.Delete("preferences").Where("key = ?", key).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "preferenceRepository.Delete").
			Str("key", key).
			Msg("failed to delete preference")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
