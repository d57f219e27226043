package keychain

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var errStoreLocked = errors.New("credential store is locked")

// MemoryStore is an in-memory implementation of Store for testing.
// It can be locked to imitate a keychain that refuses access.
type MemoryStore struct {
	mu          sync.RWMutex
	credentials map[string]string
	locked      bool
}

// NewMemoryStore creates a new in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{credentials: make(map[string]string)}
}

// SetLocked toggles the locked state. While locked every operation fails.
func (s *MemoryStore) SetLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

func (s *MemoryStore) Store(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return storageError(account, ReasonLocked, errStoreLocked)
	}
	if _, ok := s.credentials[account]; ok {
		return storageError(account, ReasonDuplicate, nil)
	}
	s.credentials[account] = password
	return nil
}

func (s *MemoryStore) Retrieve(account string) (string, error) {
	if err := checkAccount(account); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked {
		return "", errStoreLocked
	}
	val, ok := s.credentials[account]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, account)
	}
	return val, nil
}

func (s *MemoryStore) Replace(account, password string) error {
	if err := checkAccount(account); err != nil {
		return storageError(account, ReasonInvalid, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return storageError(account, ReasonLocked, errStoreLocked)
	}
	s.credentials[account] = password
	return nil
}

func (s *MemoryStore) Delete(account string) error {
	if err := checkAccount(account); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return errStoreLocked
	}
	delete(s.credentials, account)
	return nil
}

func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked {
		return nil, errStoreLocked
	}
	accounts := make([]string, 0, len(s.credentials))
	for k := range s.credentials {
		accounts = append(accounts, k)
	}
	sort.Strings(accounts)
	return accounts, nil
}
