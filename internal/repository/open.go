package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/josh-kwaku/securebank/internal/config"
)

// Open builds the Store for cfg.StoreBackend. The returned func releases its
// connections.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := NewPostgresDB(ctx, cfg.DatabaseURL, PoolConfig{
			MaxOpenConns:     cfg.DBMaxOpenConns,
			MaxIdleConns:     cfg.DBMaxIdleConns,
			ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
			ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("repository.Open: %w", err)
		}
		store := NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("repository.Open: %w", err)
		}
		return store, func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := NewRedisStore(client, cfg.RedisKeyPrefix)
		if err := store.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("repository.Open: %w", err)
		}
		return store, func() {
			if err := client.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}, nil

	case config.BackendMemory, "":
		slog.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("repository.Open: unknown backend %q", cfg.StoreBackend)
	}
}
