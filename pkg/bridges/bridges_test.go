package bridges

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	t.Setenv("HOME_BRIDGE_TOKEN", "s3cret")
	path := writeFile(t, "bridges.yaml", `
bridges:
  - id: home
    name: Home
    base_url: http://192.168.1.20:8080/
    token: ${HOME_BRIDGE_TOKEN}
    timeout_seconds: 3
  - id: office
    base_url: https://office.example
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 bridges, got %d", len(reg.All()))
	}

	home, ok := reg.ByID("home")
	if !ok {
		t.Fatalf("expected bridge home to be loaded")
	}
	if home.BaseURL != "http://192.168.1.20:8080" {
		t.Fatalf("unexpected base_url %q", home.BaseURL)
	}
	if home.Token != "s3cret" {
		t.Fatalf("expected token to be expanded from env, got %q", home.Token)
	}
	if home.Timeout() != 3*time.Second {
		t.Fatalf("unexpected timeout %v", home.Timeout())
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "home" {
		t.Fatalf("expected only home enabled, got %#v", enabled)
	}
	office, _ := reg.ByID("office")
	if office.Name != "office" || office.Timeout() != defaultTimeoutSeconds*time.Second {
		t.Fatalf("expected defaults applied, got %#v", office)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "bridges.json", `{"bridges": [{"id": "b1", "base_url": "http://b1", "token": "t"}]}`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	b, ok := reg.ByID("b1")
	if !ok || b.Token != "t" {
		t.Fatalf("unexpected bridge %#v", b)
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "bridges.yaml", `
bridges:
  - id: dup
    base_url: http://a
  - id: dup
    base_url: http://b
`)
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate bridge error")
	}
}

func TestValidateBridge(t *testing.T) {
	if err := validateBridge(Bridge{ID: "x"}); err == nil {
		t.Fatalf("expected error for missing base_url")
	}
	if err := validateBridge(Bridge{ID: "x", BaseURL: "ftp://x"}); err == nil {
		t.Fatalf("expected error for non-http base_url")
	}
	if err := validateBridge(Bridge{BaseURL: "http://x"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}
