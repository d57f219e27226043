// Package keychain stores username/password pairs in the host's secure
// credential store.
//
// On macOS credentials are generic-password items with:
//   - Service: the configured service name (default "com.rememberme")
//   - Account: the login email
//   - Label: "rememberme: <account>" (for Keychain Access.app visibility)
//
// Items are scoped with kSecAttrAccessibleWhenUnlockedThisDeviceOnly:
// never synced to iCloud, never readable while the machine is locked.
// Other platforms go through the OS keyring (Secret Service, Windows
// Credential Manager).
package keychain

import (
	"errors"
	"fmt"
)

// DefaultService is the service attribute all credentials are filed under.
const DefaultService = "com.rememberme"

var (
	// ErrNotFound is returned when no credential exists for an account.
	ErrNotFound = errors.New("credential not found")

	// ErrEmptyAccount is returned for operations on the empty account key.
	ErrEmptyAccount = errors.New("account must not be empty")

	// ErrListUnsupported is returned by backends that cannot enumerate accounts.
	ErrListUnsupported = errors.New("listing accounts is not supported by this backend")

	// ErrUnsupportedBackend is returned when a backend is unavailable on this platform.
	ErrUnsupportedBackend = errors.New("credential backend not supported on this platform")
)

// Store is the interface for credential storage operations.
type Store interface {
	// Store adds a credential. It fails with *StorageError if one already
	// exists for the account or the backend rejects the write.
	Store(account, password string) error
	Retrieve(account string) (string, error)
	// Replace overwrites any existing credential for the account.
	Replace(account, password string) error
	Delete(account string) error
	List() ([]string, error)
}

// Backend names accepted by Open.
const (
	BackendSystem   = "system"
	BackendKeychain = "keychain"
	BackendKeyring  = "keyring"
	BackendMemory   = "memory"
)

// Backends lists every backend name Open understands.
var Backends = []string{BackendSystem, BackendKeychain, BackendKeyring, BackendMemory}

// Open returns the named backend filed under service.
func Open(backend, service string) (Store, error) {
	if service == "" {
		service = DefaultService
	}
	switch backend {
	case "", BackendSystem:
		return NewSystemStore(service), nil
	case BackendKeychain:
		return NewKeychainStore(service)
	case BackendKeyring:
		return NewKeyringStore(service), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func checkAccount(account string) error {
	if account == "" {
		return ErrEmptyAccount
	}
	return nil
}
