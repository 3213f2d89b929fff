package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/terraincognita07/bodysignal/internal/i18n"
	"github.com/terraincognita07/bodysignal/internal/services"
	"gorm.io/gorm"
)

type SummaryOptions struct {
	Filter     services.DashboardFilter
	Now        time.Time
	Thresholds services.Thresholds
	I18n       *i18n.Manager
	Language   string
	Stdout     io.Writer
	// Width caps the table width; zero means the terminal width.
	Width int
}

// RunSummary prints the dashboard as a terminal table.
func RunSummary(database *gorm.DB, options SummaryOptions) error {
	overview, err := newCommandServices(database, nil).stats.BuildDashboard(services.DashboardOptions{
		Filter: options.Filter,
		Now:    options.Now,
	}, options.Thresholds)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	translator := options.I18n
	language := options.Language
	t := func(key string) string { return translator.Translate(language, key) }

	fmt.Fprintf(options.Stdout, "[%s] %s\n",
		translator.FilterLabel(language, overview.Filter),
		translator.Translatef(language, "summary.totals", overview.ActiveCount, overview.TotalLogs, overview.WeeklyAverage),
	)
	fmt.Fprintln(options.Stdout)

	if len(overview.Cards) == 0 {
		fmt.Fprintln(options.Stdout, t("summary.empty"))
		return nil
	}

	columns := []tableColumn{
		{header: t("summary.condition")},
		{header: t("summary.region")},
		{header: t("summary.latest"), rightAlign: true},
		{header: t("summary.average"), rightAlign: true},
		{header: t("summary.logs"), rightAlign: true},
		{header: t("summary.trend")},
	}
	rows := make([][]string, 0, len(overview.Cards))
	for _, card := range overview.Cards {
		latest := "-"
		if card.Latest != nil {
			latest = strconv.Itoa(card.Latest.Intensity)
		}
		trend := "-"
		if card.SinceLast != nil {
			trend = translator.TrendText(language, *card.SinceLast)
		}
		rows = append(rows, []string{
			card.Condition.Label,
			translator.RegionLabel(language, card.Condition.Region),
			latest,
			strconv.FormatFloat(card.AverageIntensity, 'f', 1, 64),
			strconv.Itoa(card.LogCount),
			trend,
		})
	}

	width := options.Width
	if width <= 0 {
		width = terminalWidth()
	}
	return writeTable(options.Stdout, columns, rows, width)
}
