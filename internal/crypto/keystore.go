// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// keyEntry is the on-disk representation of one keystore alias.
type keyEntry struct {
	Key             string `json:"key"` // base64 of the raw key material
	RequireUserAuth bool   `json:"require_user_auth"`
}

// fileKeyStore keeps one 0600-mode file per alias under a directory that
// the OS protects per-app. It models the platform secure element closely
// enough for the ciphers: keys are created in place, read only by this
// process, and vanish when the directory is wiped.
type fileKeyStore struct {
	dir string

	mu sync.Mutex
}

// NewFileKeyStore constructs a [KeyStore] rooted at dir, creating the
// directory if needed.
func NewFileKeyStore(dir string) (KeyStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &fileKeyStore{dir: dir}, nil
}

func (s *fileKeyStore) entryPath(alias string) string {
	return filepath.Join(s.dir, alias+".key")
}

// EnsureKey implements [KeyStore]. A fresh 256-bit key is read from the OS
// CSPRNG only when no entry exists under alias.
func (s *fileKeyStore) EnsureKey(alias string, opts KeyOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.entryPath(alias)); err == nil {
		return nil
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return fmt.Errorf("generate key material: %w", err)
	}

	entry := keyEntry{
		Key:             base64.StdEncoding.EncodeToString(key),
		RequireUserAuth: opts.RequireUserAuth,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode key entry: %w", err)
	}

	if err := os.WriteFile(s.entryPath(alias), payload, 0o600); err != nil {
		return fmt.Errorf("write key entry: %w", err)
	}
	return nil
}

// Key implements [KeyStore].
func (s *fileKeyStore) Key(alias string) ([]byte, KeyOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.entryPath(alias))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, KeyOptions{}, ErrKeyUnavailable
		}
		return nil, KeyOptions{}, fmt.Errorf("read key entry: %w", err)
	}

	var entry keyEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, KeyOptions{}, fmt.Errorf("decode key entry: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(entry.Key)
	if err != nil {
		return nil, KeyOptions{}, fmt.Errorf("decode key material: %w", err)
	}

	return key, KeyOptions{RequireUserAuth: entry.RequireUserAuth}, nil
}

// Contains implements [KeyStore].
func (s *fileKeyStore) Contains(alias string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.entryPath(alias))
	return err == nil
}

// Delete implements [KeyStore].
func (s *fileKeyStore) Delete(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.entryPath(alias)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove key entry: %w", err)
	}
	return nil
}

// memoryKeyStore is an in-process [KeyStore] for tests.
type memoryKeyStore struct {
	mu      sync.Mutex
	entries map[string]memoryKeyEntry
}

type memoryKeyEntry struct {
	key  []byte
	opts KeyOptions
}

// NewMemoryKeyStore constructs an in-memory [KeyStore]. Keys do not survive
// the process; intended for tests only.
func NewMemoryKeyStore() KeyStore {
	return &memoryKeyStore{entries: make(map[string]memoryKeyEntry)}
}

func (s *memoryKeyStore) EnsureKey(alias string, opts KeyOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[alias]; ok {
		return nil
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return fmt.Errorf("generate key material: %w", err)
	}
	s.entries[alias] = memoryKeyEntry{key: key, opts: opts}
	return nil
}

func (s *memoryKeyStore) Key(alias string) ([]byte, KeyOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[alias]
	if !ok {
		return nil, KeyOptions{}, ErrKeyUnavailable
	}
	return entry.key, entry.opts, nil
}

func (s *memoryKeyStore) Contains(alias string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[alias]
	return ok
}

func (s *memoryKeyStore) Delete(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, alias)
	return nil
}
