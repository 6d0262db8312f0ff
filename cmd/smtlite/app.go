package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DanKadrios/SMTLite/internal/catalog"
	"github.com/DanKadrios/SMTLite/internal/config"
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
	"github.com/DanKadrios/SMTLite/internal/ranking"
	"github.com/DanKadrios/SMTLite/internal/storage"
)

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func createRepository(cfg *config.Config, c *catalog.Catalog) (storage.Repository, func(), error) {
	dsn := cfg.Database.DSN
	if !storage.IsPostgresDSN(dsn) && !strings.Contains(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := storage.OpenAndMigrate(dsn, c.Templates())
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	driver := "sqlite"
	if storage.IsPostgresDSN(dsn) {
		driver = "postgres"
	}
	logging.Info("database ready", logging.Fields{"driver": driver})
	return storage.NewRepository(db), func() { _ = sqlDB.Close() }, nil
}

// createRanker connects to Redis when configured. An unreachable server
// degrades to the database leaderboard instead of failing startup.
func createRanker(ctx context.Context, cfg config.RedisConfig) ranking.Ranker {
	if cfg.Address == "" {
		logging.Info("redis not configured; leaderboard served from database", nil)
		return ranking.Noop{}
	}
	r := ranking.NewRedis(ranking.Options{Address: cfg.Address, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx); err != nil {
		logging.Error("redis unreachable; leaderboard served from database", err, logging.Fields{constants.LogFieldAddr: cfg.Address})
		_ = r.Close()
		return ranking.Noop{}
	}
	logging.Info("redis connected", logging.Fields{constants.LogFieldAddr: cfg.Address})
	return r
}
