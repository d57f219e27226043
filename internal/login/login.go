// Package login implements the input screen: validate the email and
// password, optionally remember them, and hand the email on to the home
// screen.
package login

import (
	"log/slog"

	"github.com/benaskins/rememberme/internal/keychain"
)

// AlertError is a validation failure the UI shows as an alert.
type AlertError struct {
	Title   string
	Message string
}

func (e *AlertError) Error() string {
	return e.Title + ": " + e.Message
}

// ErrEmptyFields is raised when either field is blank.
var ErrEmptyFields = &AlertError{
	Title:   "Empty Fields",
	Message: "Please enter email and password",
}

// Form is what the input screen collects.
type Form struct {
	Email      string
	Password   string
	RememberMe bool
}

// Validate requires both fields to be non-empty. Whitespace is kept as typed.
func (f Form) Validate() error {
	if f.Email == "" || f.Password == "" {
		return ErrEmptyFields
	}
	return nil
}

// Session is handed to the home screen after a successful submit.
type Session struct {
	Email string
	// Remembered is true when the credential was written to the store.
	Remembered bool
	// StoreErr holds the store failure, if remember-me was on and the write
	// was refused. The flow continues regardless.
	StoreErr error
}

// Submit validates the form and, if remember-me is on, stores the
// credential. Only validation failures are returned as errors.
func Submit(store keychain.Store, f Form, logger *slog.Logger) (Session, error) {
	if err := f.Validate(); err != nil {
		return Session{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := Session{Email: f.Email}
	if !f.RememberMe {
		logger.Debug("remember me off, not storing credential", "account", f.Email)
		return s, nil
	}

	if err := store.Store(f.Email, f.Password); err != nil {
		logger.Error("storing credential failed", "account", f.Email, "error", err)
		s.StoreErr = err
		return s, nil
	}
	logger.Info("credential stored", "account", f.Email)
	s.Remembered = true
	return s, nil
}
