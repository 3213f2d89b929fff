// Package main provides the bodysignal binary: the JSON API server and the
// maintenance commands that share its database.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bodysignal/internal/config"
	"github.com/terraincognita07/bodysignal/internal/db"
	"gorm.io/gorm"
)

const appName = "bodysignal"

// Version is overridden at build time with -ldflags.
var Version = "dev"

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags and the state resolved from them.
type rootOptions struct {
	configPath string
	dbPath     string

	configFile string
	config     *config.Config
	logger     *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	options := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Track symptom intensity over time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.load()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&options.configPath, "config", "c", "", "config file path (default $"+config.EnvConfigPath+" or "+config.DefaultFileName+")")
	cmd.PersistentFlags().StringVar(&options.dbPath, "db", "", "SQLite database path (overrides config and DB_PATH)")

	cmd.AddCommand(
		newServeCommand(options),
		newExportCommand(options),
		newImportCommand(options),
		newResetCommand(options),
		newSummaryCommand(options),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (options *rootOptions) load() error {
	bootstrap := slog.New(slog.NewTextHandler(options.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	options.configFile = config.ResolvePath(options.configPath)
	cfg, err := config.Load(options.configFile, bootstrap)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if options.dbPath != "" {
		cfg.Database.Path = options.dbPath
	}

	options.config = cfg
	options.logger = slog.New(slog.NewTextHandler(options.stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(options.logger)
	return nil
}

// openDatabase opens the configured database; the returned func closes it.
func (options *rootOptions) openDatabase() (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(options.config.Database.Path, options.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, func() {
		if err := db.CloseSQLite(database); err != nil {
			options.logger.Warn("database close failed", "error", err)
		}
	}, nil
}
