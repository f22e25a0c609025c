package poller

import (
	"context"

	"github.com/samvad-hq/nuki-bridge-client/pkg/bridgeapi"
	"github.com/samvad-hq/nuki-bridge-client/pkg/bridges"
	"github.com/samvad-hq/nuki-bridge-client/pkg/publishers"
)

// LockLister lists the locks paired with a bridge.
type LockLister interface {
	ListLocks(ctx context.Context) ([]bridgeapi.Lock, error)
}

// ClientFactory builds the lister used for a configured bridge.
type ClientFactory func(b bridges.Bridge) LockLister

// EventPublisher publishes lock state changes downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// StateStore remembers the last published snapshot per lock.
type StateStore interface {
	LastState(key string) (string, bool, error)
	SaveState(key, state string) error
}
