//go:build integration && darwin

package keychain

import (
	"errors"
	"testing"
)

// Integration tests use the real macOS Keychain.
// Run with: go test -tags integration ./internal/keychain/
//
// Requires an unlocked login Keychain and an interactive session
// (first run may prompt for Keychain access approval).

func integrationStore() *KeychainStore {
	return &KeychainStore{service: "com.rememberme.test"}
}

func cleanupIntegration(t *testing.T, s *KeychainStore, accounts ...string) {
	t.Helper()
	for _, a := range accounts {
		s.Delete(a)
	}
}

func TestKeychainStoreAndRetrieve(t *testing.T) {
	s := integrationStore()
	account := "integration-round-trip@example.com"
	defer cleanupIntegration(t, s, account)

	if err := s.Store(account, "hello-keychain"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	val, err := s.Retrieve(account)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if val != "hello-keychain" {
		t.Errorf("expected 'hello-keychain', got %q", val)
	}
}

func TestKeychainDuplicate(t *testing.T) {
	s := integrationStore()
	account := "integration-dup@example.com"
	defer cleanupIntegration(t, s, account)

	s.Store(account, "first")
	if err := s.Store(account, "second"); !IsDuplicate(err) {
		t.Fatalf("expected duplicate StorageError, got %v", err)
	}
}

func TestKeychainReplace(t *testing.T) {
	s := integrationStore()
	account := "integration-replace@example.com"
	defer cleanupIntegration(t, s, account)

	s.Store(account, "first")
	s.Replace(account, "second")

	val, err := s.Retrieve(account)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if val != "second" {
		t.Errorf("expected 'second', got %q", val)
	}
}

func TestKeychainReplaceMissingAdds(t *testing.T) {
	s := integrationStore()
	account := "integration-replace-missing@example.com"
	defer cleanupIntegration(t, s, account)

	if err := s.Replace(account, "fresh"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	val, err := s.Retrieve(account)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if val != "fresh" {
		t.Errorf("expected 'fresh', got %q", val)
	}
}

func TestKeychainDelete(t *testing.T) {
	s := integrationStore()
	account := "integration-delete@example.com"

	s.Store(account, "to-delete")
	s.Delete(account)

	if _, err := s.Retrieve(account); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestKeychainList(t *testing.T) {
	s := integrationStore()
	accounts := []string{"integration-list-a@example.com", "integration-list-b@example.com"}
	defer cleanupIntegration(t, s, accounts...)

	for _, a := range accounts {
		s.Store(a, "val")
	}

	listed, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	found := make(map[string]bool)
	for _, a := range listed {
		found[a] = true
	}
	for _, a := range accounts {
		if !found[a] {
			t.Errorf("expected %q in list, not found", a)
		}
	}
}
