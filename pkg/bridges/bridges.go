// Package bridges loads the set of bridges to watch from YAML/JSON files.
package bridges

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeoutSeconds = 10

// Bridge is a single bridge entry declared in config files.
type Bridge struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	BaseURL        string `json:"base_url" yaml:"base_url"`
	Token          string `json:"-" yaml:"token"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        *bool  `json:"enabled" yaml:"enabled"`
}

type configFile struct {
	Bridges []Bridge `json:"bridges" yaml:"bridges"`
}

// Registry holds the bridges loaded from a config file.
type Registry struct {
	mu      sync.RWMutex
	bridges []Bridge
	idx     map[string]Bridge
}

// LoadRegistry loads the bridge registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bridges file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bridges file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read bridges file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Bridges) == 0 {
		return nil, errors.New("bridges file contains no bridges entries")
	}

	reg := &Registry{
		bridges: make([]Bridge, len(parsed.Bridges)),
		idx:     make(map[string]Bridge, len(parsed.Bridges)),
	}
	for i := range parsed.Bridges {
		b := sanitizeBridge(parsed.Bridges[i])
		if err := validateBridge(b); err != nil {
			return nil, fmt.Errorf("bridges[%d]: %w", i, err)
		}
		if _, exists := reg.idx[b.ID]; exists {
			return nil, fmt.Errorf("duplicate bridge id %q", b.ID)
		}
		reg.bridges[i] = b
		reg.idx[b.ID] = b
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cf configFile
		if err := d.fn(data, &cf); err == nil {
			return cf, nil
		}
	}

	return configFile{}, errors.New("bridges file format not recognized (expected YAML or JSON)")
}

// sanitizeBridge trims fields, expands ${ENV} references in the token and applies defaults.
func sanitizeBridge(b Bridge) Bridge {
	b.ID = strings.TrimSpace(b.ID)
	b.Name = strings.TrimSpace(b.Name)
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	b.Token = os.ExpandEnv(b.Token)

	if b.Name == "" {
		b.Name = b.ID
	}
	if b.TimeoutSeconds <= 0 {
		b.TimeoutSeconds = defaultTimeoutSeconds
	}
	if b.Enabled == nil {
		def := true
		b.Enabled = &def
	}
	return b
}

func validateBridge(b Bridge) error {
	if b.ID == "" {
		return errors.New("id is required")
	}
	if b.BaseURL == "" {
		return fmt.Errorf("base_url is required for bridge %q", b.ID)
	}
	if !strings.HasPrefix(b.BaseURL, "http://") && !strings.HasPrefix(b.BaseURL, "https://") {
		return fmt.Errorf("base_url for bridge %q must be http(s)", b.ID)
	}
	return nil
}

// ByID returns the bridge config by id.
func (r *Registry) ByID(id string) (Bridge, bool) {
	if r == nil {
		return Bridge{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Bridge{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.idx[id]
	return b, ok
}

// All returns all configured bridges.
func (r *Registry) All() []Bridge {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Bridge, len(r.bridges))
	copy(out, r.bridges)
	return out
}

// Enabled returns bridges that are enabled.
func (r *Registry) Enabled() []Bridge {
	all := r.All()
	out := make([]Bridge, 0, len(all))
	for _, b := range all {
		if b.EnabledValue() {
			out = append(out, b)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (b Bridge) EnabledValue() bool {
	if b.Enabled == nil {
		return true
	}
	return *b.Enabled
}

// Timeout returns the per-request timeout for the bridge.
func (b Bridge) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}
