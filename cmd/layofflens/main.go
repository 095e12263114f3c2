package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/layofflens/internal/layoffs/config"
	"github.com/gartstein/layofflens/internal/layoffs/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dbConnectTimeout bounds the startup retries while the database comes up.
const dbConnectTimeout = 30 * time.Second

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "layofflens",
		Short:         "Layoff analytics API and CSV importer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML configuration file")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}
	root.AddCommand(
		newServeCmd(load, logger),
		newImportCmd(load, logger),
		newWatchCmd(load, logger),
	)
	return root
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// dbConfig maps the service configuration onto the repository's.
func dbConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.DBPath,
	}
}

// openRepository connects to the database, retrying with exponential backoff.
func openRepository(cfg *config.Config, logger *zap.Logger) (*db.Repository, error) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = dbConnectTimeout

	var repo *db.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(dbConfig(cfg))
		return err
	}, b, func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}
