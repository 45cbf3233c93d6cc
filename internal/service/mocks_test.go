package service

import (
	"context"

	"github.com/msalikhov/passvault/internal/crypto"
	"github.com/msalikhov/passvault/internal/store"
	"github.com/msalikhov/passvault/models"
)

// Hand-rolled function-field fakes: each test overrides only the methods it
// expects to be called, everything else panics loudly.

type mockCredentials struct {
	InsertFunc  func(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error)
	UpdateFunc  func(ctx context.Context, record models.CredentialRecord) error
	DeleteFunc  func(ctx context.Context, id int64) error
	GetByIDFunc func(ctx context.Context, id int64) (models.CredentialRecord, error)
	GetAllFunc  func(ctx context.Context) ([]models.CredentialRecord, error)
	SearchFunc  func(ctx context.Context, query string) ([]models.CredentialRecord, error)
}

var _ store.CredentialRepository = (*mockCredentials)(nil)

func (m *mockCredentials) Insert(ctx context.Context, record models.CredentialRecord) (models.CredentialRecord, error) {
	return m.InsertFunc(ctx, record)
}

func (m *mockCredentials) Update(ctx context.Context, record models.CredentialRecord) error {
	return m.UpdateFunc(ctx, record)
}

func (m *mockCredentials) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockCredentials) GetByID(ctx context.Context, id int64) (models.CredentialRecord, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockCredentials) GetAll(ctx context.Context) ([]models.CredentialRecord, error) {
	return m.GetAllFunc(ctx)
}

func (m *mockCredentials) Search(ctx context.Context, query string) ([]models.CredentialRecord, error) {
	return m.SearchFunc(ctx, query)
}

// fakePrefs is a map-backed PreferenceRepository.
type fakePrefs struct {
	values map[string]string
}

var _ store.PreferenceRepository = (*fakePrefs)(nil)

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: map[string]string{}}
}

func (f *fakePrefs) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", store.ErrPreferenceNotFound
	}
	return value, nil
}

func (f *fakePrefs) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakePrefs) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

type mockEnvelope struct {
	EnsureKeyExistsFunc func(requireUserAuth bool) error
	KeyIDFunc           func() string
	EncryptFunc         func(plaintext string) (string, string, error)
	DecryptFunc         func(ciphertextB64, ivB64 string) (string, error)
	DecryptUnderFunc    func(keyID, ciphertextB64, ivB64 string) (string, error)
	IsKeystoreValidFunc func() bool
}

var _ crypto.EnvelopeCipher = (*mockEnvelope)(nil)

func (m *mockEnvelope) EnsureKeyExists(requireUserAuth bool) error {
	if m.EnsureKeyExistsFunc == nil {
		return nil
	}
	return m.EnsureKeyExistsFunc(requireUserAuth)
}

func (m *mockEnvelope) KeyID() string {
	if m.KeyIDFunc == nil {
		return "test-key"
	}
	return m.KeyIDFunc()
}

func (m *mockEnvelope) Encrypt(plaintext string) (string, string, error) {
	return m.EncryptFunc(plaintext)
}

func (m *mockEnvelope) Decrypt(ciphertextB64, ivB64 string) (string, error) {
	return m.DecryptFunc(ciphertextB64, ivB64)
}

func (m *mockEnvelope) DecryptUnder(keyID, ciphertextB64, ivB64 string) (string, error) {
	return m.DecryptUnderFunc(keyID, ciphertextB64, ivB64)
}

func (m *mockEnvelope) IsKeystoreValid() bool {
	if m.IsKeystoreValidFunc == nil {
		return true
	}
	return m.IsKeystoreValidFunc()
}

type mockPassphraseCipher struct {
	EncryptPayloadFunc       func(plaintext string, passphrase []byte) (string, error)
	DecryptPayloadFunc       func(blob string, passphrase []byte) (string, error)
	DecryptPayloadLegacyFunc func(blob string, passphrase []byte) (string, error)
}

var _ crypto.PassphraseCipher = (*mockPassphraseCipher)(nil)

func (m *mockPassphraseCipher) EncryptPayload(plaintext string, passphrase []byte) (string, error) {
	return m.EncryptPayloadFunc(plaintext, passphrase)
}

func (m *mockPassphraseCipher) DecryptPayload(blob string, passphrase []byte) (string, error) {
	return m.DecryptPayloadFunc(blob, passphrase)
}

func (m *mockPassphraseCipher) DecryptPayloadLegacy(blob string, passphrase []byte) (string, error) {
	return m.DecryptPayloadLegacyFunc(blob, passphrase)
}

type mockBiometric struct {
	CanAuthenticateFunc func() bool
	AuthenticateFunc    func(ctx context.Context) error
}

var _ BiometricAuthenticator = (*mockBiometric)(nil)

func (m *mockBiometric) CanAuthenticate() bool {
	return m.CanAuthenticateFunc()
}

func (m *mockBiometric) Authenticate(ctx context.Context) error {
	return m.AuthenticateFunc(ctx)
}
