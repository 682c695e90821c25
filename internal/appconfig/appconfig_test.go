package appconfig

import (
	"context"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr default: %q", cfg.Addr)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays default: %d", cfg.RetentionDays)
	}
	if cfg.BackendURL != "" && cfg.BackendURL == cfg.Addr {
		t.Errorf("BackendURL: %q", cfg.BackendURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("BACKEND_URL", "https://authority.example.com")
	t.Setenv("RETENTION_DAYS", "30")
	t.Setenv("LOGGER_DEBUG_ON", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.BackendURL != "https://authority.example.com" ||
		cfg.RetentionDays != 30 || !cfg.LoggerDebugOn {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
