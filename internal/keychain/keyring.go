package keychain

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringStore keeps credentials in the OS keyring through go-keyring:
// Secret Service on Linux, Credential Manager on Windows, and the
// security(1) tool on macOS.
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a keyring-backed credential store.
func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Store adds the credential. go-keyring overwrites on Set, so an existing
// entry is detected with a lookup first.
func (s *KeyringStore) Store(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}
	_, err := keyring.Get(s.service, account)
	switch {
	case err == nil:
		return storageError(account, ReasonDuplicate, nil)
	case !errors.Is(err, keyring.ErrNotFound):
		// The keyring could not be read at all (e.g. no Secret Service on
		// the session bus); go-keyring reports no distinct denial error.
		return storageError(account, ReasonRejected, err)
	}
	return s.set(account, password)
}

func (s *KeyringStore) Replace(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}
	return s.set(account, password)
}

func (s *KeyringStore) set(account, password string) error {
	if err := keyring.Set(s.service, account, password); err != nil {
		return storageError(account, ReasonRejected, err)
	}
	return nil
}

func (s *KeyringStore) Retrieve(account string) (string, error) {
	if err := checkAccount(account); err != nil {
		return "", err
	}
	val, err := keyring.Get(s.service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		return "", fmt.Errorf("keyring get %q: %w", account, err)
	}
	return val, nil
}

func (s *KeyringStore) Delete(account string) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	err := keyring.Delete(s.service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %q: %w", account, err)
	}
	return nil
}

// List is not available: go-keyring has no enumeration call.
func (s *KeyringStore) List() ([]string, error) {
	return nil, ErrListUnsupported
}
