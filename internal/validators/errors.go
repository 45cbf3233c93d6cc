package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle          = errors.New("title is required")
	ErrEmptyPasswordCipher = errors.New("password ciphertext is required")
	ErrEmptyPasswordIV     = errors.New("password IV is required")
	ErrEmptyPassword       = errors.New("password is required")

	ErrPinTooShort  = errors.New("PIN must be at least 4 digits")
	ErrPinTooLong   = errors.New("PIN must be at most 6 digits")
	ErrPinNotDigits = errors.New("PIN must contain only digits")
	ErrPinMismatch  = errors.New("PIN confirmation does not match")
)
