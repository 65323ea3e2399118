// Package tokenstore persists the admin session token between CLI
// invocations. The token is opaque: it is stored as-is and trusted until the
// server rejects it.
package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "silverstar-cli"
	key     = "admin-token"
)

// Store holds at most one bearer token under a fixed key.
// Get reports absence rather than failing when no token is stored or when no
// persistent storage is available on this machine.
type Store interface {
	Get() (token string, ok bool, err error)
	Set(token string) error
	Clear() error
}

// Keyring stores the token in the OS keychain/credential manager.
type Keyring struct{}

// NewKeyring returns a Store backed by the OS keychain.
func NewKeyring() *Keyring {
	return &Keyring{}
}

func (k *Keyring) Get() (string, bool, error) {
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		// No usable keychain on this machine reads as "not logged in"
		// rather than an error, matching a missing token.
		if errors.Is(err, keyring.ErrUnsupportedPlatform) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load token: %w", err)
	}
	return token, true, nil
}

func (k *Keyring) Set(token string) error {
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (k *Keyring) Clear() error {
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Memory is an in-process Store used by tests and by the web front-end,
// where each browser session carries its own token.
type Memory struct {
	token string
	set   bool
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get() (string, bool, error) {
	return m.token, m.set, nil
}

func (m *Memory) Set(token string) error {
	m.token = token
	m.set = true
	return nil
}

func (m *Memory) Clear() error {
	m.token = ""
	m.set = false
	return nil
}
