package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/spakit/app/shell"
	"github.com/dmitrymomot/spakit/core/config"
	"github.com/dmitrymomot/spakit/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg shell.Config
	config.MustLoad(&cfg) // panic on error

	preset := logger.WithDevelopment(cfg.AppName)
	if cfg.Env == "production" {
		preset = logger.WithProduction(cfg.AppName)
	}
	log := logger.New(preset, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))

	backend, closeStorage, err := shell.OpenStorage(ctx, cfg)
	if err != nil {
		log.Error("Failed to open storage", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("Failed to close storage", logger.Component("storage"), logger.Error(err))
		}
	}()

	app, err := shell.NewApp(cfg, backend, shell.WithLogger(log))
	if err != nil {
		log.Error("Failed to create app", logger.Component("shell"), logger.Error(err))
		os.Exit(1)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	runCtx, stopWatch := context.WithCancel(egCtx)
	eg.Go(func() error {
		defer stopWatch()
		return app.Run(runCtx)
	})
	eg.Go(func() error {
		return shell.WatchStorage(runCtx, backend, clockwork.NewRealClock(), cfg.HealthInterval, log)
	})

	if err := eg.Wait(); err != nil && ctx.Err() == nil {
		log.Error("Shell stopped with error", logger.Component("shell"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
