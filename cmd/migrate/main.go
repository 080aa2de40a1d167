package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"istqb-quiz/internal/config"
	"istqb-quiz/internal/database"
	"istqb-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the question bank schema",
		SilenceUsage: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runUp(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations (postgres only)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *migrate.Migrate, log *zap.Logger) error {
					if err := database.MigrateDown(m); err != nil {
						return err
					}
					log.Info("Migrations reverted")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version (postgres only)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *migrate.Migrate, _ *zap.Logger) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						cmd.Println("no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					cmd.Printf("version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations (postgres only)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return withMigrator(func(m *migrate.Migrate, log *zap.Logger) error {
					if err := m.Force(version); err != nil {
						return err
					}
					log.Info("Schema version forced", zap.Int("version", version))
					return nil
				})
			},
		},
	)
	return root
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, err
	}
	return cfg, logger.Get(), nil
}

// runUp applies golang-migrate migrations on postgres and the embedded statement
// list on oracle.
func runUp(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.DB.Driver == database.DriverOracle {
		if ctx == nil {
			ctx = context.Background()
		}
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return database.RunOracleMigrations(ctx, db, log)
	}

	return withMigratorConfig(cfg, log, func(m *migrate.Migrate, log *zap.Logger) error {
		if err := database.MigrateUp(m); err != nil {
			return err
		}
		log.Info("Migrations applied")
		return nil
	})
}

func withMigrator(fn func(m *migrate.Migrate, log *zap.Logger) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if cfg.DB.Driver != database.DriverPostgres {
		return fmt.Errorf("command is only supported for the postgres driver, got %q", cfg.DB.Driver)
	}
	return withMigratorConfig(cfg, log, fn)
}

func withMigratorConfig(cfg *config.Config, log *zap.Logger, fn func(m *migrate.Migrate, log *zap.Logger) error) error {
	m, err := database.NewPostgresMigrator(cfg.GetDSN())
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn("Failed to close migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()
	return fn(m, log)
}
