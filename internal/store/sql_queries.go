// SPDX-License-Identifier: Apache-2.0

package store

import (
	sq "github.com/Masterminds/squirrel"
)

// credentialColumns is the column order every credential query selects and
// every scan destructures.
var credentialColumns = []string{
	"id",
	"title",
	"username",
	"password_cipher",
	"password_iv",
	"key_id",
	"notes",
	"category",
	"custom_fields",
	"created_at",
	"updated_at",
}

// qb is the shared statement builder. sqlite uses ? placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func selectCredentials() sq.SelectBuilder {
	return qb.Select(credentialColumns...).From("credentials")
}

func insertCredential(title, username, passwordCipher, passwordIV, keyID, notes, category, customFields string, createdAt, updatedAt int64) sq.InsertBuilder {
	return qb.Insert("credentials").
		Columns(credentialColumns[1:]...).
		Values(title, username, passwordCipher, passwordIV, keyID, notes, category, customFields, createdAt, updatedAt)
}

func updateCredential(id int64, title, username, passwordCipher, passwordIV, keyID, notes, category, customFields string, updatedAt int64) sq.UpdateBuilder {
	return qb.Update("credentials").
		Set("title", title).
		Set("username", username).
		Set("password_cipher", passwordCipher).
		Set("password_iv", passwordIV).
		Set("key_id", keyID).
		Set("notes", notes).
		Set("category", category).
		Set("custom_fields", customFields).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id})
}

func deleteCredential(id int64) sq.DeleteBuilder {
	return qb.Delete("credentials").Where(sq.Eq{"id": id})
}

func searchCredentials(query string) sq.SelectBuilder {
	pattern := "%" + query + "%"
	return selectCredentials().
		Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"username": pattern},
			sq.Like{"notes": pattern},
		}).
		OrderBy("id")
}

func upsertPreference(key, value string) sq.InsertBuilder {
	return qb.Insert("preferences").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value")
}
