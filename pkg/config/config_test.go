package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Store.ConsistencyPolicy != "full" {
		t.Errorf("expected full consistency policy, got %s", cfg.Store.ConsistencyPolicy)
	}
	if cfg.Ledger.Timeout != 10*time.Second {
		t.Errorf("expected 10s ledger timeout, got %v", cfg.Ledger.Timeout)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", cfg.Location())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("LEDGER_API_URL", "https://ledger.example.com/")
	t.Setenv("LEDGER_API_TIMEOUT", "3s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("DEFAULT_ROLE", "viewer")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Ledger.BaseURL != "https://ledger.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Ledger.BaseURL)
	}
	if cfg.Ledger.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Ledger.Timeout)
	}
	if cfg.DB.MaxOpenConns != 5 {
		t.Errorf("expected fallback to default on bad int, got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.Session.DefaultRole != "viewer" {
		t.Errorf("expected viewer role, got %s", cfg.Session.DefaultRole)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"session store", "SESSION_STORE", "redis"},
		{"role", "DEFAULT_ROLE", "owner"},
		{"policy", "CONSISTENCY_POLICY", "optimistic"},
		{"timezone", "TIMEZONE", "Mars/Olympus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SESSION_STORE", "memory")
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
