package core

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BG_REMOVAL_ENGINE", "")
	t.Setenv("REMBG_MODEL", "")
	t.Setenv("BG_REMOVAL_TIMEOUT", "")
	t.Setenv("BG_REMOVAL_WORKERS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.RemovalEngine != "rembg" {
		t.Errorf("RemovalEngine = %q, want %q", cfg.RemovalEngine, "rembg")
	}
	if cfg.RemovalModel != "isnet-general-use" {
		t.Errorf("RemovalModel = %q, want %q", cfg.RemovalModel, "isnet-general-use")
	}
	if cfg.RemovalTimeout != 120*time.Second {
		t.Errorf("RemovalTimeout = %v, want 120s", cfg.RemovalTimeout)
	}
	if cfg.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.MaxConcurrent)
	}
	if cfg.IconTimeout != 60*time.Second {
		t.Errorf("IconTimeout = %v, want 60s", cfg.IconTimeout)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("BG_REMOVAL_ENGINE", "rmbg2")
	t.Setenv("REMBG_MODEL", "u2net")
	t.Setenv("BG_REMOVAL_TIMEOUT", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.RemovalEngine != "rmbg2" {
		t.Errorf("RemovalEngine = %q, want %q", cfg.RemovalEngine, "rmbg2")
	}
	if cfg.RemovalModel != "u2net" {
		t.Errorf("RemovalModel = %q, want %q", cfg.RemovalModel, "u2net")
	}
	if cfg.RemovalTimeout != 30*time.Second {
		t.Errorf("RemovalTimeout = %v, want 30s", cfg.RemovalTimeout)
	}
}

func TestLoadConfigRejectsUnknownEngine(t *testing.T) {
	t.Setenv("BG_REMOVAL_ENGINE", "photoshop")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestValidateRejectsBadWorkers(t *testing.T) {
	cfg := &Config{
		RemovalEngine:  "rembg",
		RemovalTimeout: time.Second,
		IconTimeout:    time.Second,
		MaxConcurrent:  0,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}
}
