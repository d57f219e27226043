package keychain

import (
	"errors"
	"fmt"
)

// Reason classifies why the credential store refused a write.
type Reason string

const (
	ReasonDuplicate    Reason = "duplicate"
	ReasonAccessDenied Reason = "access_denied"
	ReasonLocked       Reason = "locked"
	ReasonInvalid      Reason = "invalid"
	ReasonRejected     Reason = "rejected"
)

// StorageError reports a write the credential store did not accept.
type StorageError struct {
	Account string
	Reason  Reason
	Err     error
}

func (e *StorageError) Error() string {
	msg := fmt.Sprintf("storing credential for %q: %s", e.Account, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsDuplicate reports whether err is a StorageError for an existing item.
func IsDuplicate(err error) bool {
	return hasReason(err, ReasonDuplicate)
}

// IsLocked reports whether err is a StorageError for a locked store.
func IsLocked(err error) bool {
	return hasReason(err, ReasonLocked)
}

func hasReason(err error, r Reason) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Reason == r
}

func storageError(account string, reason Reason, err error) *StorageError {
	return &StorageError{Account: account, Reason: reason, Err: err}
}
