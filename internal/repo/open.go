package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/migrations"
)

// Store is an opened trip store together with the resources behind it.
type Store struct {
	Trips   TripRepo
	Backend string

	close func() error
}

// Close releases the store's connections or files.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects the backend selected by cfg.StoreBackend. The Postgres
// backend is migrated to the latest schema before it is returned.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, log)
	case config.BackendBadger, "":
		bcfg := DefaultBadgerConfig(cfg.BadgerPath)
		bcfg.Logger = log
		db, err := OpenBadger(bcfg)
		if err != nil {
			return nil, fmt.Errorf("repo.Open: %w", err)
		}
		log.Info("badger store opened", "path", cfg.BadgerPath)
		return &Store{Trips: NewBadgerTripRepo(db.DB), Backend: config.BackendBadger, close: db.Close}, nil
	}
	return nil, fmt.Errorf("repo.Open: unknown store backend %q", cfg.StoreBackend)
}

func openPostgres(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	// New does not open connections; Ping verifies the database is reachable.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Open: ping: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Open: %w", err)
	}
	log.Info("database connection established", "migrations_applied", applied)

	return &Store{
		Trips:   NewPostgresTripRepo(pool),
		Backend: config.BackendPostgres,
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}
