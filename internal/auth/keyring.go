package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringStore implements Store on top of the OS keychain.
type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) Set(name, secret string) error {
	return keyring.Set(k.serviceName, normalizeName(name), secret)
}

func (k *KeyringStore) Get(name string) (string, error) {
	secret, err := keyring.Get(k.serviceName, normalizeName(name))
	if err == nil {
		return secret, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	return "", err
}

func (k *KeyringStore) Delete(name string) error {
	err := keyring.Delete(k.serviceName, normalizeName(name))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
