package auth

import (
	"errors"
	"testing"
)

func TestMockStore_RoundTrip(t *testing.T) {
	store := NewMockStore()

	if err := store.Set("Lambda-API-Key", "secret-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Lookup is case-insensitive on the credential name.
	got, err := store.Get("lambda-api-key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "secret-123" {
		t.Errorf("Get = %q, want %q", got, "secret-123")
	}

	if err := store.Delete(APIKeyName); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(APIKeyName); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMockStore_DeleteMissing(t *testing.T) {
	store := NewMockStore()
	if err := store.Delete("nope"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}
