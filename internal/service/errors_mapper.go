// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"

	"github.com/msalikhov/passvault/internal/codec"
	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/importer"
	"github.com/msalikhov/passvault/internal/validators"
)

// User-facing messages for every error the backup and unlock flows can
// surface. Raw errors never reach the presentation layer; UserMessage is the
// single translation point.
const (
	MsgKeystoreInvalid   = "Secure storage on this device is unavailable. Export is disabled until the keystore is restored."
	MsgPassphraseMissing = "Backup encryption is enabled but no passphrase is set. Set a passphrase and try again."
	MsgEmptyImport       = "The selected file contains no credentials to import."
	MsgDecryptionFailed  = "Could not decrypt the backup. Check the passphrase and try again."
	MsgKeyUnavailable    = "The encryption key for this data is missing from the device keystore."
	MsgBadFormat         = "The selected file does not match the expected format."
	MsgMalformedDatabase = "The KeePass database could not be read. It may be corrupted or protected with a different passphrase."
	MsgInvalidRecords    = "The file contains entries that are missing a title or password."
	MsgWrongPin          = "Wrong PIN. Try again."
	MsgPinFormat         = "The PIN must be 4 to 6 digits."
	MsgPinMismatch       = "The PIN and its confirmation do not match."
	MsgBiometricFailed   = "Biometric authentication is unavailable. Enter your PIN instead."
	MsgGenericFailure    = "Something went wrong. Please try again."
)

// UserMessage translates an internal error into the message shown to the
// user. Unknown errors collapse into a generic message so internals never
// leak to the screen.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrKeystoreInvalid):
		return MsgKeystoreInvalid
	case errors.Is(err, ErrPassphraseMissing):
		return MsgPassphraseMissing
	case errors.Is(err, ErrEmptyImport):
		return MsgEmptyImport

	case errors.Is(err, crypto.ErrDecryptionFailure),
		errors.Is(err, crypto.ErrAuthenticationFailure):
		return MsgDecryptionFailed
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return MsgKeyUnavailable

	case errors.Is(err, importer.ErrMalformedDatabase):
		return MsgMalformedDatabase
	case errors.Is(err, importer.ErrFormat), errors.Is(err, codec.ErrFormat):
		return MsgBadFormat

	case errors.Is(err, validators.ErrEmptyTitle),
		errors.Is(err, validators.ErrEmptyPassword):
		return MsgInvalidRecords

	case errors.Is(err, ErrPinMismatch), errors.Is(err, ErrPinNotConfigured):
		return MsgWrongPin
	case errors.Is(err, validators.ErrPinTooShort),
		errors.Is(err, validators.ErrPinTooLong),
		errors.Is(err, validators.ErrPinNotDigits):
		return MsgPinFormat
	case errors.Is(err, validators.ErrPinMismatch):
		return MsgPinMismatch
	case errors.Is(err, ErrBiometricUnavailable):
		return MsgBiometricFailed
	}

	return MsgGenericFailure
}
