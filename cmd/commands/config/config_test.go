package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gpuwatch/internal/config"
)

// setupTestConfig points the config package at a temp file.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout plus any error.
func execConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), err
}

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, err := execConfig(t, "get", "webhook-url")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestSetThenGet(t *testing.T) {
	setupTestConfig(t)

	if _, err := execConfig(t, "set", "region-prefix", "us"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	stdout, err := execConfig(t, "get", "region-prefix")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(stdout, "us") {
		t.Errorf("expected 'us', got: %s", stdout)
	}
}

func TestGet_ListsAllKeys(t *testing.T) {
	setupTestConfig(t)

	stdout, err := execConfig(t, "get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range config.KeyNames() {
		if !strings.Contains(stdout, key) {
			t.Errorf("expected key %q in listing:\n%s", key, stdout)
		}
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, err := execConfig(t, "set", "bogus-key", "value")
	if err == nil || !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("expected unknown key error, got: %v", err)
	}
}

func TestSet_InvalidInterval(t *testing.T) {
	setupTestConfig(t)

	_, err := execConfig(t, "set", "interval", "soon")
	if err == nil || !strings.Contains(err.Error(), "positive number") {
		t.Errorf("expected interval validation error, got: %v", err)
	}

	_, err = execConfig(t, "set", "interval", "-5")
	if err == nil {
		t.Error("expected error for negative interval")
	}
}

func TestSet_InvalidHistory(t *testing.T) {
	setupTestConfig(t)

	_, err := execConfig(t, "set", "history", "maybe")
	if err == nil || !strings.Contains(err.Error(), "true or false") {
		t.Errorf("expected bool validation error, got: %v", err)
	}
}
