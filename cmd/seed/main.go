// Command seed loads the public crop catalog into the configured database.
// It is safe to run repeatedly; plants that already exist are skipped.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"cropcast.app/internal/adapters/database"
	"cropcast.app/internal/adapters/infrastructure"
	"cropcast.app/internal/config"
	"cropcast.app/internal/seed"
	"cropcast.app/pkg/logger"
)

func main() {
	catalogPath := flag.String("file", "", "YAML catalog to load instead of the built-in one")
	timeout := flag.Duration("timeout", 2*time.Minute, "maximum time to spend seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	log := logger.SetDefault(os.Getenv("LOG_LEVEL"))

	if err := run(*catalogPath, *timeout, log); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(catalogPath string, timeout time.Duration, log *logger.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	entries, err := loadEntries(catalogPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db); err != nil {
		return err
	}

	seeder, err := seed.NewSeeder(seed.SeederDependencies{
		PlantRepo: database.NewPlantRepositoryAdapter(db),
		Logger:    infrastructure.NewSlogLoggerAdapter(log),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := seeder.Seed(ctx, entries)
	if err != nil {
		return err
	}

	slog.Info("Seeding complete", "created", result.Created, "skipped", result.Skipped)
	return nil
}

func loadEntries(path string) ([]seed.Entry, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	slog.Info("Loading catalog file", "path", path)
	return seed.LoadCatalogFile(path)
}
