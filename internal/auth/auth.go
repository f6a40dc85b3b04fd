// Package auth stores the Lambda Labs API key in the OS keychain so it
// does not have to live in shell history or plaintext files.
package auth

import (
	"errors"
	"strings"
)

// ServiceName is the keychain service entry all gpuwatch credentials
// live under.
const ServiceName = "gpuwatch"

// APIKeyName is the keychain account name for the Lambda Labs API key.
const APIKeyName = "lambda-api-key"

// ErrKeyNotFound is returned when no credential is stored under a name.
var ErrKeyNotFound = errors.New("auth: credential not found")

// Store abstracts credential persistence so commands can be tested
// without touching the real keychain.
type Store interface {
	Set(name, secret string) error
	Get(name string) (string, error)
	Delete(name string) error
}

// DefaultStore returns the standard store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// normalizeName canonicalizes a credential name for lookup.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
