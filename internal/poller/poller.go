package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samvad-hq/nuki-bridge-client/internal/logger"
	"github.com/samvad-hq/nuki-bridge-client/internal/storage"
	"github.com/samvad-hq/nuki-bridge-client/pkg/bridgeapi"
	"github.com/samvad-hq/nuki-bridge-client/pkg/bridges"
	"github.com/samvad-hq/nuki-bridge-client/pkg/httpclient"
	"github.com/samvad-hq/nuki-bridge-client/pkg/publishers"
)

// Service polls bridges and publishes lock state changes.
type Service struct {
	factory   ClientFactory
	publisher EventPublisher
	store     StateStore
	log       logger.Logger
}

// NewService wires a poller. A nil factory uses DefaultClientFactory and a
// nil store remembers nothing.
func NewService(factory ClientFactory, pub EventPublisher, log logger.Logger, store StateStore) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if factory == nil {
		factory = DefaultClientFactory(log)
	}
	if store == nil {
		store = noopStore{}
	}
	return &Service{
		factory:   factory,
		publisher: pub,
		store:     store,
		log:       log,
	}
}

// DefaultClientFactory builds a resty-backed BridgeClient per bridge.
func DefaultClientFactory(log logger.Logger) ClientFactory {
	return func(b bridges.Bridge) LockLister {
		client := httpclient.NewRestyClient(httpclient.Options{
			BaseURL: b.BaseURL,
			Timeout: b.Timeout(),
		})
		return bridgeapi.NewBridgeClient(client, b.Token, log)
	}
}

// Run executes a poll pass for all configured bridges.
func (s *Service) Run(ctx context.Context, cfgs []bridges.Bridge) error {
	if s == nil || s.factory == nil {
		return fmt.Errorf("poller service is not initialized")
	}
	if len(cfgs) == 0 {
		return fmt.Errorf("no bridges configured for polling")
	}

	errs := s.runAll(ctx, cfgs)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, cfgs []bridges.Bridge) []error {
	errs := make([]error, 0, len(cfgs))

	for _, cfg := range cfgs {
		if ctx.Err() != nil {
			break
		}
		if err := s.runBridge(ctx, cfg); err != nil {
			if ctx.Err() != nil {
				break
			}
			errs = append(errs, err)
			s.log.ErrorObj("bridge poll failed", "bridge_error", map[string]any{
				"bridge_id": cfg.ID,
				"error":     err.Error(),
			})
		}
	}

	return errs
}

func (s *Service) runBridge(ctx context.Context, cfg bridges.Bridge) error {
	locks, err := s.factory(cfg).ListLocks(ctx)
	if err != nil {
		return fmt.Errorf("list locks on bridge %s: %w", cfg.ID, err)
	}

	var (
		errs      []error
		published int
	)
	for _, lock := range locks {
		changed, previous, snapshot, err := s.detectChange(cfg.ID, lock)
		if err != nil {
			s.log.WarnObj("lock state lookup failed", "store_error", map[string]any{
				"bridge_id": cfg.ID,
				"nuki_id":   lock.NukiID,
				"error":     err.Error(),
			})
		}
		if !changed {
			// Re-save so the stored entry does not expire while the lock sits still.
			if err := s.store.SaveState(storage.LockKey(cfg.ID, lock.NukiID), snapshot); err != nil {
				s.log.WarnObj("lock state refresh failed", "store_error", map[string]any{
					"bridge_id": cfg.ID,
					"nuki_id":   lock.NukiID,
					"error":     err.Error(),
				})
			}
			continue
		}

		evt := publishers.NewEvent(cfg.ID, cfg.Name, lock, previous)
		if s.publisher != nil {
			if _, err := s.publisher.Publish(ctx, evt); err != nil {
				errs = append(errs, fmt.Errorf("publish lock %d: %w", lock.NukiID, err))
				continue
			}
		}
		published++

		if err := s.store.SaveState(storage.LockKey(cfg.ID, lock.NukiID), snapshot); err != nil {
			errs = append(errs, fmt.Errorf("save state for lock %d: %w", lock.NukiID, err))
		}
	}

	s.log.InfoObj("bridge poll completed", "bridge_result", map[string]any{
		"bridge_id":        cfg.ID,
		"locks_seen":       len(locks),
		"events_published": published,
	})
	return errors.Join(errs...)
}

// snapshot is what the store keeps per lock.
type snapshot struct {
	State           int    `json:"state"`
	StateName       string `json:"state_name"`
	BatteryCritical bool   `json:"battery_critical"`
}

// detectChange compares lock against the stored snapshot. Lookup errors are
// reported but treated as a change so the event is not lost.
func (s *Service) detectChange(bridgeID string, lock bridgeapi.Lock) (bool, string, string, error) {
	current := snapshot{
		State:           lock.LastKnownState.State,
		StateName:       lock.LastKnownState.StateName,
		BatteryCritical: lock.LastKnownState.BatteryCritical,
	}
	if current.StateName == "" {
		current.StateName = lock.LastKnownState.LockState().String()
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return false, "", "", fmt.Errorf("encode snapshot: %w", err)
	}

	stored, ok, err := s.store.LastState(storage.LockKey(bridgeID, lock.NukiID))
	if err != nil {
		return true, "", string(raw), err
	}
	if !ok {
		return true, "", string(raw), nil
	}

	var previous snapshot
	if err := json.Unmarshal([]byte(stored), &previous); err != nil {
		return true, "", string(raw), nil
	}
	if previous == current {
		return false, previous.StateName, string(raw), nil
	}
	return true, previous.StateName, string(raw), nil
}

type noopStore struct{}

func (noopStore) LastState(string) (string, bool, error) { return "", false, nil }
func (noopStore) SaveState(string, string) error         { return nil }
