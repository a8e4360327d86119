package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/config"
	"github.com/alexk15655-dotcom/MCGuide/internal/database"
	"github.com/alexk15655-dotcom/MCGuide/internal/handler/health"
	"github.com/alexk15655-dotcom/MCGuide/internal/migrations"
	"github.com/alexk15655-dotcom/MCGuide/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// --- Content ---
	var src catalog.Catalog
	checks := map[string]health.Checker{}

	if cfg.ContentDB != "" {
		db, err := database.Open(ctx, cfg.ContentDB, database.ReadOnly())
		if err != nil {
			return fmt.Errorf("opening content database: %w", err)
		}
		defer db.Close()

		version, err := migrations.Version(db)
		if err != nil {
			return fmt.Errorf("content database %s: %w (run the importer first)", cfg.ContentDB, err)
		}
		logger.Info("serving content from database", "path", cfg.ContentDB, "schema_version", version)

		src = catalog.NewSQLSource(db)
		checks["content_db"] = dbChecker{db}
	} else {
		files, err := catalog.OpenDir(cfg.ContentDir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
		logger.Info("serving content from files", "dir", cfg.ContentDir)
		src = files
	}

	reg := catalog.NewRegistry(src)
	checks["catalog"] = health.CheckerFunc(reg.Check)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Catalog:         reg,
		Checks:          checks,
		TransitionLock:  cfg.TransitionLock,
		LiveIdleTimeout: cfg.LiveIdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
