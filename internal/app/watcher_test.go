package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/nuki-bridge-client/internal/config"
	"github.com/samvad-hq/nuki-bridge-client/pkg/publishers"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWatcherPublishesLockStatesFromBridge(t *testing.T) {
	bridge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list" || r.URL.Query().Get("token") != "s3cret" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"nukiId": 1, "name": "Front", "lastKnownState": {"state": 1, "stateName": "Locked"}}]`))
	}))
	defer bridge.Close()

	var (
		mu     sync.Mutex
		events []publishers.Event
	)
	received := make(chan struct{}, 1)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		mu.Lock()
		events = append(events, evt)
		mu.Unlock()
		select {
		case received <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer sink.Close()

	dir := t.TempDir()
	bridgesYAML := "bridges:\n  - id: home\n    base_url: " + bridge.URL + "\n    token: s3cret\n"
	publishersYAML := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + sink.URL + "\n"
	cfg := &config.Config{
		BridgesFile:            writeFile(t, dir, "bridges.yaml", bridgesYAML),
		PublishersFile:         writeFile(t, dir, "publishers.yaml", publishersYAML),
		PollInterval:           time.Hour,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "locks.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for published event")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].BridgeID != "home" || events[0].NukiID != 1 || events[0].StateName != "Locked" {
		t.Fatalf("unexpected event %#v", events[0])
	}
}

func TestNewWatcherRequiresPublishers(t *testing.T) {
	dir := t.TempDir()
	bridgesYAML := "bridges:\n  - id: home\n    base_url: http://localhost:1\n"
	publishersYAML := "publishers:\n  - id: hook\n    type: http\n    enabled: false\n    http:\n      url: http://localhost:1\n"
	cfg := &config.Config{
		BridgesFile:    writeFile(t, dir, "bridges.yaml", bridgesYAML),
		PublishersFile: writeFile(t, dir, "publishers.yaml", publishersYAML),
		StorageType:    "none",
	}
	if _, err := NewWatcher(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error when no publishers are enabled")
	}
}

func TestNewWatcherRejectsNilConfig(t *testing.T) {
	if _, err := NewWatcher(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
