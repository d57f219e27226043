//go:build !darwin

package keychain

// NewKeychainStore fails outside macOS; the Keychain only exists there.
func NewKeychainStore(service string) (Store, error) {
	return nil, ErrUnsupportedBackend
}

// NewSystemStore returns the OS keyring store on non-darwin platforms.
func NewSystemStore(service string) Store {
	return NewKeyringStore(service)
}
