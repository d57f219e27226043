// Package home implements the display screen: look up the remembered
// password for an email and render it.
package home

import (
	"fmt"

	"github.com/benaskins/rememberme/internal/keychain"
)

// DefaultLabel is shown when no credential could be read.
const DefaultLabel = "Label"

// Label returns the display text for email. Errors from the store are
// returned unchanged; callers keep DefaultLabel in that case.
func Label(store keychain.Store, email string) (string, error) {
	pwd, err := store.Retrieve(email)
	if err != nil {
		return DefaultLabel, err
	}
	return Format(email, pwd), nil
}

// Format renders a credential the way the home screen shows it.
func Format(email, password string) string {
	return fmt.Sprintf("Username: %s,Password: %s ", email, password)
}
