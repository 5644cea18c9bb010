package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/cmd"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "warehouse",
		Short:         "Warehouse storage and billing service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the background jobs",
			RunE: func(c *cobra.Command, _ []string) error {
				return withRuntime(c.Context(), serve)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the schema and seed the default pricing",
			RunE: func(c *cobra.Command, _ []string) error {
				return withRuntime(c.Context(), migrate)
			},
		},
	)

	return root
}

type runtime struct {
	config cmd.Config
	logger *zap.Logger
}

func withRuntime(ctx context.Context, run func(ctx context.Context, rt runtime) error) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := cmd.NewLogger(config)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, runtime{config: config, logger: logger}); err != nil {
		logger.Error("command failed", zap.Error(err))
		return err
	}
	return nil
}

func migrate(ctx context.Context, rt runtime) error {
	db, err := postgres.Open(rt.config.DSN(), rt.config.Pool())
	if err != nil {
		return err
	}
	defer closeGorm(db)

	return runMigrations(ctx, db, rt)
}

func runMigrations(ctx context.Context, db *gorm.DB, rt runtime) error {
	now := clock.NewSystem(rt.config.Location()).Now()
	if err := postgres.Migrate(ctx, db, rt.logger, now); err != nil {
		return err
	}

	rt.logger.Info("schema is up to date", zap.String("db_name", rt.config.DBName))
	return nil
}

func serve(ctx context.Context, rt runtime) error {
	gormDB, err := postgres.Open(rt.config.DSN(), rt.config.Pool())
	if err != nil {
		return err
	}
	defer closeGorm(gormDB)

	if err = runMigrations(ctx, gormDB, rt); err != nil {
		return err
	}

	readDB, err := postgres.OpenReader(ctx, rt.config.DSN(), rt.config.Pool())
	if err != nil {
		return err
	}
	defer func() {
		_ = readDB.Close()
	}()
	rt.logger.Info("connected to PostgreSQL", zap.String("db_name", rt.config.DBName))

	app, err := cmd.NewCompositionRoot(ctx, rt.config, gormDB, readDB, rt.logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	return startWebServer(ctx, e, rt)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func startWebServer(ctx context.Context, e *echo.Echo, rt runtime) error {
	addr := fmt.Sprintf("0.0.0.0:%s", rt.config.HTTPPort)

	serveErr := make(chan error, 1)
	go func() {
		rt.logger.Info("starting HTTP server", zap.String("addr", addr))
		serveErr <- e.Start(addr)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	rt.logger.Info("server stopped")
	return nil
}
