package validators

import (
	"context"
	"fmt"

	"github.com/msalikhov/passvault/models"
)

const (
	FieldTitle          = "title"
	FieldPasswordCipher = "password_cipher"
	FieldPasswordIV     = "password_iv"
	FieldPassword       = "password"
	FieldPin            = "pin"
	FieldConfirmation   = "confirmation"
)

const (
	pinMinLength = 4
	pinMaxLength = 6
)

type VaultValidator struct {
}

func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CredentialRecord:
		return v.validateCredentialRecord(ctx, value, fields...)
	case *models.CredentialRecord:
		return v.validateCredentialRecord(ctx, *value, fields...)

	case models.ImportRecord:
		return v.validateImportRecord(ctx, value, fields...)
	case *models.ImportRecord:
		return v.validateImportRecord(ctx, *value, fields...)

	case models.PinSetup:
		return v.validatePinSetup(ctx, value, fields...)
	case *models.PinSetup:
		return v.validatePinSetup(ctx, *value, fields...)

	case []models.ImportRecord:
		for i, record := range value {
			if err := v.validateImportRecord(ctx, record, fields...); err != nil {
				return fmt.Errorf("validation error at index %d: %w", i, err)
			}
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultValidator) validateCredentialRecord(_ context.Context, record models.CredentialRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldPasswordCipher, FieldPasswordIV}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if record.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPasswordCipher:
			if record.PasswordCipher == "" {
				return ErrEmptyPasswordCipher
			}
		case FieldPasswordIV:
			if record.PasswordIV == "" {
				return ErrEmptyPasswordIV
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultValidator) validateImportRecord(_ context.Context, record models.ImportRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if record.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if record.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePinSetup checks the PIN before any key material is derived from it:
// a malformed PIN must never reach the cipher layer.
func (v *VaultValidator) validatePinSetup(_ context.Context, setup models.PinSetup, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPin, FieldConfirmation}
	}

	for _, f := range fields {
		switch f {
		case FieldPin:
			if len(setup.Pin) < pinMinLength {
				return ErrPinTooShort
			}
			if len(setup.Pin) > pinMaxLength {
				return ErrPinTooLong
			}
			for _, r := range setup.Pin {
				if r < '0' || r > '9' {
					return ErrPinNotDigits
				}
			}
		case FieldConfirmation:
			if setup.Pin != setup.Confirmation {
				return ErrPinMismatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
