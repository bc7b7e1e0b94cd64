package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:8000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"missing backend", func(c *Config) { c.BackendURL = "" }, "backend url"},
		{"zero timeout", func(c *Config) { c.BackendTimeout = 0 }, "timeout"},
		{"bad store", func(c *Config) { c.SessionStore = "redis" }, "session store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("expected error containing %q, got %v", tt.errSub, err)
			}
		})
	}
}

func TestLoadLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.yml")
	content := "categories:\n  Groceries: 食料品\n  Pets: ペット\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels: %v", err)
	}
	if labels["Pets"] != "ペット" || labels["Groceries"] != "食料品" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestLoadLabelsFallbacks(t *testing.T) {
	labels, err := LoadLabels("")
	if err != nil || labels != nil {
		t.Errorf("empty path should return nil, nil; got %v, %v", labels, err)
	}

	if _, err := LoadLabels(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(empty, []byte("other: 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadLabels(empty); err == nil {
		t.Error("expected error for file without categories")
	}
}
