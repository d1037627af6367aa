// Package selector picks the storage backend at startup.
package selector

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"attendancehub/internal/config"
	"attendancehub/internal/seed"
	"attendancehub/internal/store"
	"attendancehub/internal/store/memory"
	"attendancehub/internal/store/postgres"
)

// Open returns the postgres store when a database URL is configured and the
// seeded in-memory store otherwise. Schema or seeding failures are logged and
// do not stop the server; the postgres store stays selected regardless of
// reachability.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, error) {
	now := time.Now()
	data := seed.Demo(now, rand.New(rand.NewSource(now.UnixNano())))

	if cfg.DatabaseURL == "" {
		log.Info("storage selected", "mode", store.ModeMemory)
		return memory.New(data), nil
	}

	pg, err := postgres.Open(cfg.DatabaseURL, postgres.Options{
		MaxOpenConns:   cfg.DB.MaxOpenConns,
		MaxIdleTime:    cfg.DB.MaxIdleTime,
		ConnectTimeout: cfg.DB.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	log.Info("storage selected", "mode", store.ModePostgres)

	seedCtx, cancel := context.WithTimeout(ctx, cfg.SeedTimeout)
	defer cancel()
	if err := pg.EnsureSchema(seedCtx, data); err != nil {
		log.Warn("schema initialization failed", "err", err)
	}
	return pg, nil
}
