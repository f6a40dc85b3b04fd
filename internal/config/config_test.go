package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)
	return path
}

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	setupTestConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	setupTestConfig(t)

	want := &Config{
		WebhookURL:      "https://hooks.slack.com/services/T00/B00/xyz",
		RegionPrefix:    "us",
		IntervalSeconds: 120,
		DisableHistory:  true,
	}
	if err := want.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	if spec := Lookup("  Webhook-URL "); spec == nil || spec.Name != "webhook-url" {
		t.Errorf("Lookup should match case-insensitively, got %+v", spec)
	}
	if spec := Lookup("bogus"); spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeySpec_IntervalRoundTrip(t *testing.T) {
	cfg := &Config{}
	spec := Lookup("interval")

	spec.Set(cfg, "90")
	if cfg.IntervalSeconds != 90 {
		t.Errorf("IntervalSeconds = %d, want 90", cfg.IntervalSeconds)
	}
	if got := spec.Get(cfg); got != "90" {
		t.Errorf("Get = %q, want %q", got, "90")
	}
}

func TestKeySpec_HistoryDefaultsTrue(t *testing.T) {
	cfg := &Config{}
	spec := Lookup("history")

	if got := spec.Get(cfg); got != "true" {
		t.Errorf("Get = %q, want %q", got, "true")
	}
	spec.Set(cfg, "FALSE")
	if !cfg.DisableHistory {
		t.Error("expected history to be disabled")
	}
}
