package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/log"
	"github.com/02loveslollipop/polar-ec-dashboard/services/api/config"
	"github.com/02loveslollipop/polar-ec-dashboard/services/api/db"
	httpserver "github.com/02loveslollipop/polar-ec-dashboard/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := log.Init(cfg.Data.Debug); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cache := dataset.NewCache(cfg.Data.Dir, cfg.Data.Options())
	srv := httpserver.New(cfg, cache)

	if cfg.DatabaseURL != "" {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connection error: %v", err)
		}
		defer store.Close()
		srv.WithPublished(store)
	}

	// Warm the cache; failures are logged by the server and retried per request.
	_, _ = cache.Get()

	if cfg.WatchDataDir {
		watcher, err := dataset.NewWatcher(cache, cfg.WatchDebounce)
		if err != nil {
			log.Warnw("data directory watch disabled", "dir", cfg.Data.Dir, "error", err)
		} else {
			watcher.OnInvalidate = func(ev fsnotify.Event) {
				log.Infow("data directory changed", "path", ev.Name, "op", ev.Op.String())
			}
			watcher.OnError = func(err error) {
				log.Warnw("data directory watch error", "error", err)
			}
			go watcher.Run(ctx)
			defer watcher.Close()
		}
	}

	log.Infow("dashboard API listening", "addr", cfg.ListenAddr(), "data_dir", cfg.Data.Dir)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
