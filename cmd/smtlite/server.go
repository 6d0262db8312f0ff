package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/DanKadrios/SMTLite/internal/api"
	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/config"
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
	"github.com/DanKadrios/SMTLite/internal/service"
	"github.com/DanKadrios/SMTLite/internal/version"
)

const shutdownTimeout = 10 * time.Second

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.Log.Level)
	logging.Info("smtlite starting", logging.Fields{"version": version.Version, "commit": version.Commit})

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	repo, closeDB, err := createRepository(cfg, cat)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer closeDB()

	ranker := createRanker(ctx, cfg.Redis)
	defer ranker.Close()

	svc := service.New(service.Options{
		Catalog:    cat,
		Repo:       repo,
		Ranker:     ranker,
		Scheduler:  battle.TimerScheduler{},
		TurnDelay:  cfg.Battle.TurnDelay,
		SessionTTL: cfg.Battle.SessionTTL,
	})

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("server started", logging.Fields{constants.LogFieldAddr: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Background reaper: drop sessions nobody has touched within the TTL.
	g.Go(func() error {
		return svc.RunReaper(gctx, cfg.Battle.ReapInterval)
	})

	return g.Wait()
}
