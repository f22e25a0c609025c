package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BRIDGE_TOKEN", "")
	t.Setenv("NUKI_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BridgeTimeout != 10*time.Second {
		t.Fatalf("unexpected bridge timeout %v", cfg.BridgeTimeout)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval)
	}
	if cfg.StorageType != "bbolt" {
		t.Fatalf("unexpected storage type %q", cfg.StorageType)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_BASE_URL", " http://bridge.local:8080 ")
	t.Setenv("NUKI_TOKEN", "from-bridge-env")
	t.Setenv("POLL_INTERVAL", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BridgeBaseURL != "http://bridge.local:8080" {
		t.Fatalf("unexpected base url %q", cfg.BridgeBaseURL)
	}
	if cfg.BridgeToken != "from-bridge-env" {
		t.Fatalf("unexpected token %q", cfg.BridgeToken)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("BRIDGE_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero bridge timeout")
	}
}
