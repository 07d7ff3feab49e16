package repository

import (
	"context"
	"fmt"
	"log/slog"

	"quicksell-pos/internal/config"
	"quicksell-pos/pkg/database"
)

// Open selects the persistence backend once at startup. In auto mode the
// remote API is probed with a single read and the local store is used
// when SERVER_URL is unset or unreachable.
func Open(ctx context.Context, cfg config.Store, pg config.Postgres, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		return NewRemoteStore(cfg.ServerURL, cfg.RemoteTimeout)

	case config.BackendLocal:
		return NewLocalStore(ctx, cfg.LocalPath, cfg.SeedDefaults)

	case config.BackendPostgres:
		db, err := database.ConnectDB(pg, logger)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil

	case config.BackendAuto, "":
		if cfg.ServerURL != "" {
			remote, err := NewRemoteStore(cfg.ServerURL, cfg.RemoteTimeout)
			if err == nil {
				if err = remote.Ping(ctx); err == nil {
					return remote, nil
				}
			}
			logger.Warn("remote store unreachable, falling back to local store",
				slog.String("server_url", cfg.ServerURL),
				slog.Any("error", err))
		}
		return NewLocalStore(ctx, cfg.LocalPath, cfg.SeedDefaults)

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
