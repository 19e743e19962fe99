package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Command != "claude" || cfg.Workers != 5 || cfg.TimeoutSeconds != 120 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMergesFile(t *testing.T) {
	root := t.TempDir()
	content := "workers: 2\ntimeout: 30\nignore_tags:\n  - claude\n"
	if err := os.WriteFile(filepath.Join(root, File), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Fatalf("expected workers=2, got %d", cfg.Workers)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.Timeout())
	}
	if len(cfg.IgnoreTags) != 1 || cfg.IgnoreTags[0] != "claude" {
		t.Fatalf("unexpected ignore tags %v", cfg.IgnoreTags)
	}
	// File values merge over defaults, not replace them.
	if cfg.Command != "claude" || cfg.TimeoutRetries != 2 {
		t.Fatalf("expected defaults preserved, got %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, File), []byte("workers: [oops"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(root); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected workers=0 to fail validation")
	}

	cfg = Default()
	cfg.Workers = 100
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected workers=100 to fail validation")
	}

	cfg = Default()
	cfg.Command = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected empty command to fail validation")
	}

	cfg = Default()
	cfg.TimeoutRetries = 11
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected excessive retries to fail validation")
	}
}
