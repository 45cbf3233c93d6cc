package crypto

import (
	"errors"
	"testing"
)

func newTestEnvelope(t *testing.T) EnvelopeCipher {
	t.Helper()
	env := NewEnvelopeCipher(NewMemoryKeyStore(), "test-alias")
	if err := env.EnsureKeyExists(false); err != nil {
		t.Fatalf("EnsureKeyExists error: %v", err)
	}
	return env
}

func TestEnvelope_EncryptDecryptRoundTrip(t *testing.T) {
	env := newTestEnvelope(t)

	ct, iv, err := env.Encrypt("sample123")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if ct == "" || iv == "" {
		t.Fatalf("expected non-empty ciphertext and iv")
	}

	got, err := env.Decrypt(ct, iv)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got != "sample123" {
		t.Fatalf("Decrypt = %q, want %q", got, "sample123")
	}
}

func TestEnvelope_IVNeverReused(t *testing.T) {
	env := newTestEnvelope(t)

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		_, iv, err := env.Encrypt("same plaintext")
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}
		if seen[iv] {
			t.Fatalf("IV %q produced twice for the same key", iv)
		}
		seen[iv] = true
	}
}

func TestEnvelope_EnsureKeyExists_Idempotent(t *testing.T) {
	env := newTestEnvelope(t)

	ct, iv, err := env.Encrypt("before second ensure")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// A second EnsureKeyExists must not rotate the key.
	if err := env.EnsureKeyExists(false); err != nil {
		t.Fatalf("EnsureKeyExists error: %v", err)
	}

	got, err := env.Decrypt(ct, iv)
	if err != nil {
		t.Fatalf("Decrypt after re-ensure error: %v", err)
	}
	if got != "before second ensure" {
		t.Fatalf("Decrypt = %q, want original plaintext", got)
	}
}

func TestEnvelope_DecryptMismatchedPair(t *testing.T) {
	env := newTestEnvelope(t)

	ct1, _, err := env.Encrypt("first")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	_, iv2, err := env.Encrypt("second")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := env.Decrypt(ct1, iv2); !errors.Is(err, ErrAuthenticationFailure) {
		t.Fatalf("Decrypt with mismatched iv: err = %v, want ErrAuthenticationFailure", err)
	}
}

func TestEnvelope_DecryptGarbage(t *testing.T) {
	env := newTestEnvelope(t)

	if _, err := env.Decrypt("not base64!!!", "also not base64!!!"); !errors.Is(err, ErrAuthenticationFailure) {
		t.Fatalf("Decrypt garbage: err = %v, want ErrAuthenticationFailure", err)
	}
}

func TestEnvelope_KeyDeleted(t *testing.T) {
	ks := NewMemoryKeyStore()
	env := NewEnvelopeCipher(ks, "doomed-alias")
	if err := env.EnsureKeyExists(false); err != nil {
		t.Fatalf("EnsureKeyExists error: %v", err)
	}

	ct, iv, err := env.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if err := ks.Delete("doomed-alias"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if _, err := env.Decrypt(ct, iv); !errors.Is(err, ErrKeyUnavailable) {
		t.Fatalf("Decrypt after key wipe: err = %v, want ErrKeyUnavailable", err)
	}
}

func TestEnvelope_DecryptUnder_RotatedKey(t *testing.T) {
	ks := NewMemoryKeyStore()

	oldCipher := NewEnvelopeCipher(ks, "key-v1")
	if err := oldCipher.EnsureKeyExists(false); err != nil {
		t.Fatalf("EnsureKeyExists error: %v", err)
	}
	ct, iv, err := oldCipher.Encrypt("pre-rotation secret")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// Rotate: new cipher bound to a new alias, old generation still present.
	newCipher := NewEnvelopeCipher(ks, "key-v2")
	if err := newCipher.EnsureKeyExists(false); err != nil {
		t.Fatalf("EnsureKeyExists error: %v", err)
	}

	got, err := newCipher.DecryptUnder("key-v1", ct, iv)
	if err != nil {
		t.Fatalf("DecryptUnder error: %v", err)
	}
	if got != "pre-rotation secret" {
		t.Fatalf("DecryptUnder = %q, want original plaintext", got)
	}
}

func TestEnvelope_IsKeystoreValid(t *testing.T) {
	ks := NewMemoryKeyStore()
	env := NewEnvelopeCipher(ks, "probe-alias")

	// Probe creates the key when missing.
	if !env.IsKeystoreValid() {
		t.Fatalf("IsKeystoreValid = false on a healthy keystore")
	}
	if !ks.Contains("probe-alias") {
		t.Fatalf("probe should have created the key entry")
	}
}

func TestFileKeyStore_RoundTrip(t *testing.T) {
	ks, err := NewFileKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKeyStore error: %v", err)
	}

	if err := ks.EnsureKey("alias-a", KeyOptions{RequireUserAuth: true}); err != nil {
		t.Fatalf("EnsureKey error: %v", err)
	}

	key1, opts, err := ks.Key("alias-a")
	if err != nil {
		t.Fatalf("Key error: %v", err)
	}
	if len(key1) != 32 {
		t.Fatalf("key length = %d, want 32", len(key1))
	}
	if !opts.RequireUserAuth {
		t.Fatalf("RequireUserAuth not preserved")
	}

	// Ensure again: same material.
	if err := ks.EnsureKey("alias-a", KeyOptions{}); err != nil {
		t.Fatalf("EnsureKey error: %v", err)
	}
	key2, _, err := ks.Key("alias-a")
	if err != nil {
		t.Fatalf("Key error: %v", err)
	}
	if string(key1) != string(key2) {
		t.Fatalf("EnsureKey rotated an existing key")
	}

	if err := ks.Delete("alias-a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, _, err := ks.Key("alias-a"); !errors.Is(err, ErrKeyUnavailable) {
		t.Fatalf("Key after delete: err = %v, want ErrKeyUnavailable", err)
	}
}
