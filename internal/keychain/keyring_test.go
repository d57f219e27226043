package keychain

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

// go-keyring's mock provider replaces the OS keyring for the whole process.

func mockKeyring(t *testing.T) *KeyringStore {
	t.Helper()
	keyring.MockInit()
	return NewKeyringStore("com.rememberme.test")
}

func TestKeyringRoundTrip(t *testing.T) {
	s := mockKeyring(t)

	if err := s.Store("round@example.com", "s3cret"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	val, err := s.Retrieve("round@example.com")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if val != "s3cret" {
		t.Errorf("expected 's3cret', got %q", val)
	}
}

func TestKeyringRetrieveNotFound(t *testing.T) {
	s := mockKeyring(t)

	_, err := s.Retrieve("ghost@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKeyringStoreDuplicate(t *testing.T) {
	s := mockKeyring(t)

	s.Store("dup@example.com", "first")
	if err := s.Store("dup@example.com", "second"); !IsDuplicate(err) {
		t.Fatalf("expected duplicate StorageError, got %v", err)
	}

	val, _ := s.Retrieve("dup@example.com")
	if val != "first" {
		t.Errorf("expected 'first', got %q", val)
	}
}

func TestKeyringReplace(t *testing.T) {
	s := mockKeyring(t)

	s.Store("swap@example.com", "first")
	if err := s.Replace("swap@example.com", "second"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	val, _ := s.Retrieve("swap@example.com")
	if val != "second" {
		t.Errorf("expected 'second', got %q", val)
	}
}

func TestKeyringDeleteIdempotent(t *testing.T) {
	s := mockKeyring(t)

	s.Store("gone@example.com", "pw")
	if err := s.Delete("gone@example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("gone@example.com"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestKeyringWriteRejected(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus: no secret service"))
	s := NewKeyringStore("com.rememberme.test")

	err := s.Store("fail@example.com", "pw")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if se.Account != "fail@example.com" {
		t.Errorf("expected account fail@example.com, got %q", se.Account)
	}
	if se.Reason != ReasonRejected {
		t.Errorf("expected rejected for an unreachable keyring, got %s", se.Reason)
	}
}

func TestKeyringListUnsupported(t *testing.T) {
	s := mockKeyring(t)

	if _, err := s.List(); !errors.Is(err, ErrListUnsupported) {
		t.Errorf("expected ErrListUnsupported, got %v", err)
	}
}
