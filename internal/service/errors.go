package service

import "errors"

var (
	ErrKeystoreInvalid   = errors.New("keystore failed validity check")
	ErrPassphraseMissing = errors.New("backup encryption is enabled but no passphrase is set")
	ErrEmptyImport       = errors.New("import contained no records")

	ErrPinMismatch          = errors.New("wrong PIN")
	ErrPinNotConfigured     = errors.New("no PIN has been set up")
	ErrBiometricUnavailable = errors.New("biometric authentication is not available")
)
