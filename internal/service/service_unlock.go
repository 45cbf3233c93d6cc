package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/store"
	"github.com/msalikhov/passvault/internal/validators"
	"github.com/msalikhov/passvault/models"
)

type unlockService struct {
	preferences store.PreferenceRepository
	envelope    crypto.EnvelopeCipher
	validator   validators.Validator
	biometric   BiometricAuthenticator
	logger      *logger.Logger

	mu          sync.Mutex
	state       models.LockState
	initialized bool
}

func NewUnlockService(
	preferences store.PreferenceRepository,
	envelope crypto.EnvelopeCipher,
	validator validators.Validator,
	biometric BiometricAuthenticator,
	log *logger.Logger,
) UnlockService {
	return &unlockService{
		preferences: preferences,
		envelope:    envelope,
		validator:   validator,
		biometric:   biometric,
		logger:      log,
	}
}

func (u *unlockService) State(ctx context.Context) (models.LockState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.initialized {
		state, err := u.lockedState(ctx)
		if err != nil {
			return "", err
		}
		u.state = state
		u.initialized = true
	}

	return u.state, nil
}

func (u *unlockService) SetupPin(ctx context.Context, setup models.PinSetup) error {
	// The PIN is validated in full before any key material is derived or
	// touched; a malformed PIN never reaches the cipher.
	if err := u.validator.Validate(ctx, setup); err != nil {
		return err
	}

	if err := u.envelope.EnsureKeyExists(false); err != nil {
		return fmt.Errorf("ensure envelope key for PIN: %w", err)
	}

	ciphertext, iv, err := u.envelope.Encrypt(setup.Pin)
	if err != nil {
		return fmt.Errorf("encrypt PIN: %w", err)
	}

	// The ciphertext is written last: the gate probes PrefPinCipher to
	// decide whether a PIN exists, so a failure partway through must never
	// leave a ciphertext stranded without its IV and key generation.
	writes := []struct{ key, value string }{
		{store.PrefPinIV, iv},
		{store.PrefPinKeyID, u.envelope.KeyID()},
		{store.PrefPinCipher, ciphertext},
	}
	for _, w := range writes {
		if err := u.preferences.Set(ctx, w.key, w.value); err != nil {
			return fmt.Errorf("store PIN preference %s: %w", w.key, err)
		}
	}

	u.setState(models.LockStateUnlocked)
	u.logger.Info().Msg("PIN configured")
	return nil
}

func (u *unlockService) VerifyPin(ctx context.Context, pin string) error {
	ciphertext, iv, keyID, err := u.storedPin(ctx)
	if err != nil {
		return err
	}

	stored, err := u.envelope.DecryptUnder(keyID, ciphertext, iv)
	if err != nil {
		return fmt.Errorf("decrypt stored PIN: %w", err)
	}

	if stored != pin {
		u.setState(models.LockStateAwaitingPin)
		return ErrPinMismatch
	}

	u.setState(models.LockStateUnlocked)
	return nil
}

func (u *unlockService) UnlockWithBiometric(ctx context.Context) error {
	if u.biometric == nil || !u.biometric.CanAuthenticate() {
		return ErrBiometricUnavailable
	}

	if err := u.biometric.Authenticate(ctx); err != nil {
		// Failure or cancellation: PIN entry becomes the only path, with
		// no lockout or backoff.
		u.setState(models.LockStateAwaitingPin)
		return fmt.Errorf("biometric authentication: %w", err)
	}

	u.setState(models.LockStateUnlocked)
	return nil
}

func (u *unlockService) Lock(ctx context.Context) error {
	state, err := u.lockedState(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.state = state
	u.initialized = true
	u.mu.Unlock()
	return nil
}

// lockedState derives the gate's resting state from stored preferences and
// device capability. Callers that hold the mutex must not use State.
func (u *unlockService) lockedState(ctx context.Context) (models.LockState, error) {
	_, err := u.preferences.Get(ctx, store.PrefPinCipher)
	if errors.Is(err, store.ErrPreferenceNotFound) {
		return models.LockStateNoPinConfigured, nil
	}
	if err != nil {
		return "", fmt.Errorf("probe stored PIN: %w", err)
	}

	if u.biometric != nil && u.biometric.CanAuthenticate() {
		return models.LockStateAwaitingBiometric, nil
	}
	return models.LockStateAwaitingPin, nil
}

func (u *unlockService) storedPin(ctx context.Context) (ciphertext, iv, keyID string, err error) {
	ciphertext, err = u.preferences.Get(ctx, store.PrefPinCipher)
	if errors.Is(err, store.ErrPreferenceNotFound) {
		return "", "", "", ErrPinNotConfigured
	}
	if err != nil {
		return "", "", "", fmt.Errorf("load PIN ciphertext: %w", err)
	}

	iv, err = u.preferences.Get(ctx, store.PrefPinIV)
	if err != nil {
		return "", "", "", fmt.Errorf("load PIN IV: %w", err)
	}

	keyID, err = u.preferences.Get(ctx, store.PrefPinKeyID)
	if err != nil {
		return "", "", "", fmt.Errorf("load PIN key generation: %w", err)
	}

	return ciphertext, iv, keyID, nil
}

func (u *unlockService) setState(state models.LockState) {
	u.mu.Lock()
	u.state = state
	u.initialized = true
	u.mu.Unlock()
}
