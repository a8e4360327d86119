// Command importer loads a content directory into a libSQL database that
// the server can then serve with CONTENT_DB.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexk15655-dotcom/MCGuide/internal/catalog"
	"github.com/alexk15655-dotcom/MCGuide/internal/config"
	"github.com/alexk15655-dotcom/MCGuide/internal/database"
	"github.com/alexk15655-dotcom/MCGuide/internal/migrations"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	dir := fs.String("content", cfg.ContentDir, "content directory to import")
	dbPath := fs.String("db", cfg.ContentDB, "libSQL database file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return fmt.Errorf("no database: set CONTENT_DB or pass -db")
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	files, err := catalog.OpenDir(*dir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	db, err := database.Open(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	res, err := catalog.NewSQLSource(db).Import(ctx, files)
	if err != nil {
		return err
	}
	logger.Info("imported content", "dir", *dir, "db", *dbPath, "brands", res.Brands, "guides", res.Guides)
	return nil
}
