package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/repositories"
	"github.com/desertthunder/cinex/internal/shared"
)

// SetupConfig writes the configuration template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set catalog.api_key (or %s) to your TMDB API key\n", shared.EnvAPIKey)
	r.writePlain("2. Run 'cinex setup database' to prepare watchlist storage\n")
	return nil
}

// SetupDatabase initializes watchlist storage and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using current settings", "error", err)
			config = r.config
		}
	} else {
		r.logger.Info("config file not found, using current settings", "path", configPath)
	}

	storage := config.Storage
	switch storage.Driver {
	case "file":
		r.logger.Info("initializing file storage", "dir", storage.Dir)
		if _, err := repositories.NewFileKV(afero.NewOsFs(), storage.Dir); err != nil {
			return fmt.Errorf("failed to create storage: %w", err)
		}
		r.writePlain("✓ File storage ready at %s\n", storage.Dir)
		return nil
	default:
		r.logger.Info("initializing database", "path", storage.Path)
		db, err := shared.OpenStorageDatabase(storage)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		applied, err := shared.AppliedMigrations(db)
		if err != nil {
			return err
		}
		r.logger.Infof("setup complete for database: %v", storage.Path)
		r.writePlain("✓ Database ready at %s (%s applied)\n", storage.Path, shared.CountLabel(len(applied), "migration"))
		return nil
	}
}
