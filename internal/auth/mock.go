package auth

// MockStore is an in-memory credential store for testing.
type MockStore struct {
	secrets map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{secrets: make(map[string]string)}
}

func (m *MockStore) Set(name, secret string) error {
	m.secrets[normalizeName(name)] = secret
	return nil
}

func (m *MockStore) Get(name string) (string, error) {
	secret, ok := m.secrets[normalizeName(name)]
	if !ok {
		return "", ErrKeyNotFound
	}
	return secret, nil
}

func (m *MockStore) Delete(name string) error {
	key := normalizeName(name)
	if _, ok := m.secrets[key]; !ok {
		return ErrKeyNotFound
	}
	delete(m.secrets, key)
	return nil
}
