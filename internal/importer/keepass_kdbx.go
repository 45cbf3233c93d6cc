// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tobischo/gokeepasslib/v3"

	"github.com/msalikhov/passvault/models"
)

// keePassKDBXImporter opens an encrypted KeePass KDBX database with its
// master passphrase and maps every entry of the database's default group.
//
// Unlike the CSV path there is no per-entry skip: an entry missing a
// mandatory field fails the whole import with ErrMalformedDatabase. A
// binary database that decrypts but violates its own schema indicates
// corruption, and partial results from a corrupt source are worse than
// none.
type keePassKDBXImporter struct {
	masterPassphrase string
}

// NewKeePassKDBXImporter constructs the KDBX [Importer] for a database
// protected by masterPassphrase.
func NewKeePassKDBXImporter(masterPassphrase string) Importer {
	return &keePassKDBXImporter{masterPassphrase: masterPassphrase}
}

// Parse implements [Importer].
func (i *keePassKDBXImporter) Parse(raw []byte) ([]models.ImportRecord, error) {
	db := gokeepasslib.NewDatabase()
	db.Credentials = gokeepasslib.NewPasswordCredentials(i.masterPassphrase)

	if err := gokeepasslib.NewDecoder(bytes.NewReader(raw)).Decode(db); err != nil {
		return nil, fmt.Errorf("%w: cannot open database (wrong passphrase or not a KDBX file)", ErrMalformedDatabase)
	}
	if err := db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("%w: cannot unlock protected entries", ErrMalformedDatabase)
	}

	if db.Content == nil || db.Content.Root == nil || len(db.Content.Root.Groups) == 0 {
		return nil, fmt.Errorf("%w: no root group", ErrMalformedDatabase)
	}
	group := db.Content.Root.Groups[0]

	records := make([]models.ImportRecord, 0, len(group.Entries))
	for _, entry := range group.Entries {
		title, ok := entryValue(entry, "Title")
		if !ok {
			return nil, fmt.Errorf("%w: entry missing Title", ErrMalformedDatabase)
		}
		username, ok := entryValue(entry, "UserName")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q missing UserName", ErrMalformedDatabase, title)
		}
		password, ok := entryValue(entry, "Password")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q missing Password", ErrMalformedDatabase, title)
		}
		notes, ok := entryValue(entry, "Notes")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q missing Notes", ErrMalformedDatabase, title)
		}

		if strings.TrimSpace(password) == "" {
			continue // present but blank: filtered like every importer does
		}

		record := models.ImportRecord{
			Title:    title,
			Username: username,
			Password: password,
			Notes:    notes,
		}
		if entry.Times.CreationTime != nil {
			ms := entry.Times.CreationTime.Time.UnixMilli()
			record.CreatedAt = &ms
		}
		if entry.Times.LastModificationTime != nil {
			ms := entry.Times.LastModificationTime.Time.UnixMilli()
			record.UpdatedAt = &ms
		}

		records = append(records, record)
	}

	return records, nil
}

// entryValue looks up a named value on a KDBX entry. The bool result
// distinguishes "field absent" (malformed entry) from "field empty".
func entryValue(entry gokeepasslib.Entry, key string) (string, bool) {
	for _, v := range entry.Values {
		if v.Key == key {
			return v.Value.Content, true
		}
	}
	return "", false
}
