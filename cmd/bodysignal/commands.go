package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bodysignal/internal/cli"
	"github.com/terraincognita07/bodysignal/internal/i18n"
	"github.com/terraincognita07/bodysignal/internal/services"
)

func newExportCommand(options *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every condition and log to a JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, closeDatabase, err := options.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			_, err = cli.RunExport(database, outPath, cmd.OutOrStdout(), time.Now(), options.config.Location())
			return err
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", `output file; "-" writes to stdout (default bodysignal-export-<date>.json)`)
	return cmd
}

func newImportCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, closeDatabase, err := options.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			_, err = cli.RunImport(database, args[0], cmd.OutOrStdout())
			return err
		},
	}
}

func newResetCommand(options *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every condition and log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, closeDatabase, err := options.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			return cli.RunReset(database, cli.ResetOptions{
				Yes:         yes,
				Interactive: cli.StdinIsTerminal(),
				Stdin:       cmd.InOrStdin(),
				Stdout:      cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSummaryCommand(options *rootOptions) *cobra.Command {
	var (
		filter   string
		language string
		width    int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedFilter, err := services.ParseDashboardFilter(filter)
			if err != nil {
				return fmt.Errorf("%w: %q", err, filter)
			}

			i18nManager, err := i18n.NewManager(options.config.Server.DefaultLanguage, i18n.EmbeddedLocales())
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}

			database, closeDatabase, err := options.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			return cli.RunSummary(database, cli.SummaryOptions{
				Filter:     parsedFilter,
				Now:        time.Now(),
				Thresholds: options.config.Thresholds,
				I18n:       i18nManager,
				Language:   i18nManager.NormalizeLanguage(language),
				Stdout:     cmd.OutOrStdout(),
				Width:      width,
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(services.FilterAll), "all, critical or improved")
	cmd.Flags().StringVar(&language, "lang", "", "output language (en, ru)")
	cmd.Flags().IntVar(&width, "width", 0, "maximum table width (default terminal width)")
	return cmd
}
