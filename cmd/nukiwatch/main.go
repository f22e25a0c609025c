package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"

	"github.com/samvad-hq/nuki-bridge-client/internal/app"
	"github.com/samvad-hq/nuki-bridge-client/internal/config"
	"github.com/samvad-hq/nuki-bridge-client/internal/logger"
)

func main() {
	if err := start(); err != nil {
		fmt.Fprintf(os.Stderr, "nukiwatch start failed: %v\n", err)
		os.Exit(1)
	}
}

func start() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("nukiwatch starting", "config", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := app.NewWatcher(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize watcher", "error", err)
		return err
	}

	var (
		g      run.Group
		runErr error
	)
	{
		sig := make(chan os.Signal, 1)
		g.Add(func() error {
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			select {
			case s := <-sig:
				return fmt.Errorf("signal received: %v", s)
			case <-ctx.Done():
				return ctx.Err()
			}
		}, func(error) {
			signal.Stop(sig)
			cancel()
		})
	}
	{
		g.Add(func() error {
			runErr = watcher.Run(ctx)
			return runErr
		}, func(err error) {
			logger.InfoObj("watcher shutting down", "reason", fmt.Sprint(err))
			cancel()
		})
	}

	err = g.Run()
	logger.InfoObj("nukiwatch stopped", "reason", fmt.Sprint(err))
	if runErr != nil {
		return fmt.Errorf("watcher run: %w", runErr)
	}
	return nil
}
