// SPDX-License-Identifier: Apache-2.0

package models

// BackupFormat selects the serialization used for native backup files.
// Format dispatch is done by passing this enum to the codec registry at the
// orchestrator boundary; adding a format means adding a codec, not a branch.
type BackupFormat string

const (
	// BackupFormatJSON serializes records as a JSON array of objects.
	BackupFormatJSON BackupFormat = "json"

	// BackupFormatCSV serializes records as header-named CSV columns.
	BackupFormatCSV BackupFormat = "csv"
)

// ImportSource identifies which importer parses a foreign file.
type ImportSource string

const (
	// ImportSourceNative re-reads this application's own JSON/CSV backups.
	ImportSourceNative ImportSource = "native"

	// ImportSourceBitwarden parses Bitwarden unencrypted JSON exports.
	ImportSourceBitwarden ImportSource = "bitwarden"

	// ImportSourceKeePassCSV parses KeePass CSV exports.
	ImportSourceKeePassCSV ImportSource = "keepass-csv"

	// ImportSourceKeePassKDBX opens KeePass KDBX databases.
	ImportSourceKeePassKDBX ImportSource = "keepass-kdbx"
)
