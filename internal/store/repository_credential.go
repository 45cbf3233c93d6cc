// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/models"
)

// credentialRepository is the sqlite-backed implementation of
// [CredentialRepository]. It executes all credential CRUD operations
// directly against the "credentials" table using the embedded [*DB]
// connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (record id, search query, row counts).
type credentialRepository struct {
	*DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{
		DB:     db,
		logger: logger,
	}
}

// Insert implements [CredentialRepository]. Timestamps left at zero are
// stamped with the write time.
func (r *credentialRepository) Insert(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UnixMilli()
	if record.CreatedAt == 0 {
		record.CreatedAt = now
	}
	if record.UpdatedAt == 0 {
		record.UpdatedAt = now
	}

	customFields, err := encodeCustomFields(record.CustomFields)
	if err != nil {
		return models.CredentialRecord{}, err
	}

	query, args, err := insertCredential(
		record.Title, record.Username, record.PasswordCipher, record.PasswordIV,
		record.KeyID, record.Notes, record.Category, customFields,
		record.CreatedAt, record.UpdatedAt,
	).ToSql()
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.Insert").
			Str("title", record.Title).
			Msg("failed to insert credential record")
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.CredentialRecord{}, ErrCredentialNotSaved
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	record.ID = id

	return record, nil
}

// Update implements [CredentialRepository]. UpdatedAt is always stamped
// with the write time.
func (r *credentialRepository) Update(ctx context.Context, record models.CredentialRecord) error {
	log := logger.FromContext(ctx)

	customFields, err := encodeCustomFields(record.CustomFields)
	if err != nil {
		return err
	}

	query, args, err := updateCredential(
		record.ID,
		record.Title, record.Username, record.PasswordCipher, record.PasswordIV,
		record.KeyID, record.Notes, record.Category, customFields,
		time.Now().UnixMilli(),
	).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.Update").
			Int64("id", record.ID).
			Msg("failed to update credential record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// Delete implements [CredentialRepository].
func (r *credentialRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteCredential(id).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.Delete").
			Int64("id", id).
			Msg("failed to delete credential record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// GetByID implements [CredentialRepository].
func (r *credentialRepository) GetByID(ctx context.Context, id int64) (models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectCredentials().Where("id = ?", id).ToSql()
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	record, err := scanCredential(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CredentialRecord{}, ErrCredentialNotFound
		}
		log.Err(err).
			Str("func", "credentialRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan credential row")
		return models.CredentialRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// GetAll implements [CredentialRepository].
func (r *credentialRepository) GetAll(ctx context.Context) ([]models.CredentialRecord, error) {
	return r.queryMany(ctx, "credentialRepository.GetAll", selectCredentials().OrderBy("id"))
}

// Search implements [CredentialRepository].
func (r *credentialRepository) Search(ctx context.Context, searchQuery string) ([]models.CredentialRecord, error) {
	return r.queryMany(ctx, "credentialRepository.Search", searchCredentials(searchQuery))
}

type scanFunc func(dest ...any) error

// queryMany runs a multi-row select and scans every row.
func (r *credentialRepository) queryMany(ctx context.Context, caller string, builder interface {
	ToSql() (string, []any, error)
}) ([]models.CredentialRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute credential query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CredentialRecord, 0, 50)
	for rows.Next() {
		record, scanErr := scanCredential(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// scanCredential destructures one row in credentialColumns order.
func scanCredential(scan scanFunc) (models.CredentialRecord, error) {
	var record models.CredentialRecord
	var customFields string

	err := scan(
		&record.ID,
		&record.Title,
		&record.Username,
		&record.PasswordCipher,
		&record.PasswordIV,
		&record.KeyID,
		&record.Notes,
		&record.Category,
		&customFields,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return models.CredentialRecord{}, err
	}

	record.CustomFields, err = decodeCustomFields(customFields)
	if err != nil {
		return models.CredentialRecord{}, err
	}

	return record, nil
}

// Custom fields live in a single JSON text column; the database never
// inspects them.

func encodeCustomFields(fields []models.CustomField) (string, error) {
	if len(fields) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode custom fields: %w", err)
	}
	return string(encoded), nil
}

func decodeCustomFields(encoded string) ([]models.CustomField, error) {
	if encoded == "" || encoded == "[]" {
		return nil, nil
	}
	var fields []models.CustomField
	if err := json.Unmarshal([]byte(encoded), &fields); err != nil {
		return nil, fmt.Errorf("decode custom fields: %w", err)
	}
	return fields, nil
}
