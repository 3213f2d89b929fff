package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bodysignal/internal/api"
	"github.com/terraincognita07/bodysignal/internal/config"
	"github.com/terraincognita07/bodysignal/internal/i18n"
	"github.com/terraincognita07/bodysignal/internal/metrics"
)

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), options)
		},
	}
}

func runServe(ctx context.Context, options *rootOptions) error {
	cfg := options.config
	logger := options.logger

	database, closeDatabase, err := options.openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase()

	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage, i18n.EmbeddedLocales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	registry := metrics.New()
	handler, err := api.NewHandler(database, i18nManager, api.Options{
		Location:     cfg.Location(),
		WeekStart:    cfg.WeekStart(),
		LookbackDays: cfg.Calendar.LookbackDays,
		Thresholds:   cfg.Thresholds,
		Logger:       logger,
		Metrics:      registry,
		AccessLog:    options.stdout,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	watcher, err := config.NewWatcher(options.configFile, logger, func(reloaded *config.Config) {
		handler.SetThresholds(reloaded.Thresholds)
		registry.ConfigReloaded()
		logger.Info("thresholds reloaded", "path", options.configFile)
	})
	switch {
	case err == nil:
		defer watcher.Close()
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("config hot reload disabled", "path", options.configFile, "error", err)
	default:
		logger.Warn("config hot reload disabled", "path", options.configFile, "error", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("bodysignal listening",
		"addr", "0.0.0.0:"+cfg.Server.Port,
		"db", cfg.Database.Path,
		"tz", cfg.Location().String(),
		"week_start", cfg.WeekStart().String(),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
