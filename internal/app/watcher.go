package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/nuki-bridge-client/internal/config"
	"github.com/samvad-hq/nuki-bridge-client/internal/logger"
	"github.com/samvad-hq/nuki-bridge-client/internal/poller"
	"github.com/samvad-hq/nuki-bridge-client/internal/storage"
	"github.com/samvad-hq/nuki-bridge-client/pkg/bridges"
	"github.com/samvad-hq/nuki-bridge-client/pkg/publishers"
)

// Watcher represents the lock watcher runtime. It runs the poll loop over the
// configured bridges and owns the publishers and the state store.
type Watcher struct {
	cfg          *config.Config
	bridges      []bridges.Bridge
	fanout       *publishers.Fanout
	pollService  *poller.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	bridgeReg, err := bridges.LoadRegistry(cfg.BridgesFile)
	if err != nil {
		return nil, fmt.Errorf("load bridges registry: %w", err)
	}
	enabledBridges := bridgeReg.Enabled()
	bridgeIDs := make([]string, 0, len(enabledBridges))
	for _, b := range enabledBridges {
		bridgeIDs = append(bridgeIDs, b.ID)
	}
	log.InfoObj("bridges registry loaded", "bridges_meta", map[string]any{
		"count": len(bridgeIDs),
		"ids":   bridgeIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		StateTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"state_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Watcher{
		cfg:          cfg,
		bridges:      enabledBridges,
		fanout:       fanout,
		pollService:  poller.NewService(poller.DefaultClientFactory(log), fanout, log, store),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.pollService == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	if len(w.bridges) == 0 {
		w.log.WarnObj("no bridges enabled; watcher idle", "bridges_file", w.cfg.BridgesFile)
		<-ctx.Done()
		return nil
	}

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"bridges_count":    len(w.bridges),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// runOnce performs a single poll pass across all bridges.
func (w *Watcher) runOnce(ctx context.Context) error {
	start := time.Now()
	w.log.DebugObj("poll started", "poll_meta", map[string]any{
		"bridges_count": len(w.bridges),
		"started_at":    start.UTC(),
	})
	if err := w.pollService.Run(ctx, w.bridges); err != nil {
		return err
	}
	w.log.DebugObj("poll completed", "poll_meta", map[string]any{
		"bridges_count": len(w.bridges),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the store and publishers, logging any errors encountered.
func (w *Watcher) close() {
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publishers close failed", "error", err)
	}
}
