package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FAMILYFLOW_LOG_LEVEL",
		"FAMILYFLOW_LOG_FORMAT",
		"FAMILYFLOW_LEDGER_PATH",
		"FAMILYFLOW_MIN_DELAY",
		"FAMILYFLOW_MAX_DELAY",
		"FAMILYFLOW_FAILURE_RATE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.LedgerPath != "familyflow.db" {
		t.Errorf("LedgerPath = %q, want %q", cfg.LedgerPath, "familyflow.db")
	}
	if cfg.Service.MinDelay != 150*time.Millisecond || cfg.Service.MaxDelay != 450*time.Millisecond {
		t.Errorf("delay = %s..%s, want 150ms..450ms", cfg.Service.MinDelay, cfg.Service.MaxDelay)
	}
	if cfg.Service.FailureRate != 0.05 {
		t.Errorf("FailureRate = %v, want 0.05", cfg.Service.FailureRate)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FAMILYFLOW_LOG_LEVEL", "debug")
	t.Setenv("FAMILYFLOW_LOG_FORMAT", "json")
	t.Setenv("FAMILYFLOW_LEDGER_PATH", "/tmp/ledger.db")
	t.Setenv("FAMILYFLOW_MIN_DELAY", "0s")
	t.Setenv("FAMILYFLOW_MAX_DELAY", "10ms")
	t.Setenv("FAMILYFLOW_FAILURE_RATE", "0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.LedgerPath != "/tmp/ledger.db" {
		t.Errorf("LedgerPath = %q", cfg.LedgerPath)
	}
	if cfg.Service.MinDelay != 0 || cfg.Service.MaxDelay != 10*time.Millisecond {
		t.Errorf("delay = %s..%s, want 0s..10ms", cfg.Service.MinDelay, cfg.Service.MaxDelay)
	}
	if cfg.Service.FailureRate != 0 {
		t.Errorf("FailureRate = %v, want 0", cfg.Service.FailureRate)
	}
}

func TestFromEnvErrorsNameVariable(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad min delay", "FAMILYFLOW_MIN_DELAY", "soon", "FAMILYFLOW_MIN_DELAY"},
		{"bad max delay", "FAMILYFLOW_MAX_DELAY", "10", "FAMILYFLOW_MAX_DELAY"},
		{"bad failure rate", "FAMILYFLOW_FAILURE_RATE", "often", "FAMILYFLOW_FAILURE_RATE"},
		{"bad format", "FAMILYFLOW_LOG_FORMAT", "xml", "FAMILYFLOW_LOG_FORMAT"},
		{"rate out of range", "FAMILYFLOW_FAILURE_RATE", "1.5", "failure rate"},
		{"max below min", "FAMILYFLOW_MAX_DELAY", "100ms", "below min delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
