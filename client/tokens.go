package client

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "todo-summarizer"

// TokenStore keeps the bearer token in the OS keyring, one entry per
// server URL.
type TokenStore struct {
	open func() (keyring.Keyring, error)
	key  string
}

func NewTokenStore(serverURL string) *TokenStore {
	return &TokenStore{open: openKeyring, key: "token:" + serverURL}
}

// NewTokenStoreWith uses an already opened keyring.
func NewTokenStoreWith(ring keyring.Keyring, serverURL string) *TokenStore {
	return &TokenStore{
		open: func() (keyring.Keyring, error) { return ring, nil },
		key:  "token:" + serverURL,
	}
}

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/todo-summarizer/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("todo-summarizer-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Load returns "" without error when no token is stored.
func (s *TokenStore) Load() (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(s.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return string(item.Data), nil
}

func (s *TokenStore) Save(token string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: s.key, Data: []byte(token), Label: "todo-summarizer token"}); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear() error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(s.key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
