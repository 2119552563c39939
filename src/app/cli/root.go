// Package cli wires configuration, storage and the HTTP server behind the
// qaboard command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qaboard/src/app/server"
	"qaboard/src/infra/config"
	"qaboard/src/infra/db"
	"qaboard/src/infra/logger"
	"qaboard/src/infra/repo"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "qaboard",
		Short:        "Q&A board API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			return db.Migrate(cmd.Context(), cfg.Database.DSN(), log)
		},
	}
}

func load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Log), nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := load()
	if err != nil {
		return err
	}
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	if cfg.Migrate.AutoMigrate {
		if err := db.Migrate(ctx, cfg.Database.DSN(), log); err != nil {
			return err
		}
	} else {
		logger.Warn(log, "auto-migrate disabled, expecting an up-to-date schema")
	}

	storageLog := logger.WithComponent(log, "storage")
	pg, err := db.New(ctx, cfg.Database, storageLog)
	if err != nil {
		return err
	}
	defer pg.Close()

	votes := repo.NewVoteLedger(pg, storageLog)
	questions := repo.NewQuestionRepository(pg, votes, storageLog)
	answers := repo.NewAnswerRepository(pg, votes, storageLog)

	srv := server.New(cfg, logger.WithComponent(log, "http"), questions, answers)
	return srv.Run(ctx)
}
