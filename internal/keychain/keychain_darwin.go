//go:build darwin

package keychain

import (
	"errors"
	"fmt"
	"sort"

	gokeychain "github.com/keybase/go-keychain"
)

// KeychainStore keeps credentials as generic passwords in the macOS Keychain.
type KeychainStore struct {
	service string
}

// NewKeychainStore creates a Keychain-backed credential store.
func NewKeychainStore(service string) (Store, error) {
	return &KeychainStore{service: service}, nil
}

// NewSystemStore returns the macOS Keychain store.
func NewSystemStore(service string) Store {
	return &KeychainStore{service: service}
}

func (s *KeychainStore) item(account, password string) gokeychain.Item {
	item := gokeychain.NewGenericPassword(
		s.service,
		account,
		fmt.Sprintf("rememberme: %s", account),
		[]byte(password),
		"",
	)
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)
	return item
}

// Store adds the credential. An existing item for the account is left
// untouched and reported as a duplicate.
func (s *KeychainStore) Store(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}
	if err := gokeychain.AddItem(s.item(account, password)); err != nil {
		return writeError(account, err)
	}
	return nil
}

// Replace overwrites the credential in place. The existing item keeps its
// password if the update fails; a missing item is added.
func (s *KeychainStore) Replace(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}

	query := gokeychain.NewItem()
	query.SetSecClass(gokeychain.SecClassGenericPassword)
	query.SetService(s.service)
	query.SetAccount(account)

	update := gokeychain.NewItem()
	update.SetData([]byte(password))

	err := gokeychain.UpdateItem(query, update)
	if errors.Is(err, gokeychain.ErrorItemNotFound) {
		err = gokeychain.AddItem(s.item(account, password))
	}
	if err != nil {
		return writeError(account, err)
	}
	return nil
}

func (s *KeychainStore) Retrieve(account string) (string, error) {
	if err := checkAccount(account); err != nil {
		return "", err
	}
	data, err := gokeychain.GetGenericPassword(s.service, account, "", "")
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, account)
		}
		return "", fmt.Errorf("keychain get %q: %w", account, err)
	}
	// go-keychain reports a missing item as (nil, nil).
	if data == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return string(data), nil
}

func (s *KeychainStore) List() ([]string, error) {
	accounts, err := gokeychain.GetGenericPasswordAccounts(s.service)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain list: %w", err)
	}
	sort.Strings(accounts)
	return accounts, nil
}

func (s *KeychainStore) Delete(account string) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	err := gokeychain.DeleteGenericPasswordItem(s.service, account)
	if err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return fmt.Errorf("keychain delete %q: %w", account, err)
	}
	return nil
}

func writeError(account string, err error) error {
	switch {
	case errors.Is(err, gokeychain.ErrorDuplicateItem):
		return storageError(account, ReasonDuplicate, err)
	case errors.Is(err, gokeychain.ErrorAuthFailed):
		return storageError(account, ReasonAccessDenied, err)
	case errors.Is(err, gokeychain.ErrorInteractionNotAllowed):
		return storageError(account, ReasonLocked, err)
	default:
		return storageError(account, ReasonRejected, err)
	}
}
