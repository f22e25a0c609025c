// Package storage keeps the last observed state of every watched lock.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store remembers the last published state per lock key.
type Store interface {
	Close() error
	LastState(key string) (state string, ok bool, err error)
	SaveState(key, state string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	StateTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultStateTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// LockKey builds the store key for a lock on a bridge.
func LockKey(bridgeID string, nukiID int64) string {
	return fmt.Sprintf("%s/%d", bridgeID, nukiID)
}

func normalizeOptions(opts Options) Options {
	if opts.StateTTL <= 0 {
		opts.StateTTL = defaultStateTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// noopStore never remembers anything, so every poll reports every lock.
type noopStore struct{}

func (noopStore) Close() error                           { return nil }
func (noopStore) LastState(string) (string, bool, error) { return "", false, nil }
func (noopStore) SaveState(string, string) error         { return nil }
