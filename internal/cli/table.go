package cli

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultTableWidth = 100
	columnGap         = "  "
	ellipsis          = "…"
)

type tableColumn struct {
	header     string
	rightAlign bool
}

// writeTable prints rows aligned on display width, so labels with wide
// runes (Cyrillic, CJK, emoji) keep the columns straight. The first column
// is truncated when the table would exceed maxWidth.
func writeTable(out io.Writer, columns []tableColumn, rows [][]string, maxWidth int) error {
	widths := make([]int, len(columns))
	for index, column := range columns {
		widths[index] = runewidth.StringWidth(column.header)
	}
	for _, row := range rows {
		for index, cell := range row {
			widths[index] = max(widths[index], runewidth.StringWidth(cell))
		}
	}

	total := len(columnGap) * (len(columns) - 1)
	for _, width := range widths {
		total += width
	}
	if maxWidth > 0 && total > maxWidth && len(widths) > 0 {
		widths[0] = max(widths[0]-(total-maxWidth), runewidth.StringWidth(columns[0].header))
	}

	header := make([]string, len(columns))
	for index, column := range columns {
		header[index] = column.header
	}
	if err := writeTableRow(out, columns, widths, header); err != nil {
		return err
	}
	separator := make([]string, len(columns))
	for index := range columns {
		separator[index] = strings.Repeat("-", widths[index])
	}
	if err := writeTableRow(out, columns, widths, separator); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeTableRow(out, columns, widths, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTableRow(out io.Writer, columns []tableColumn, widths []int, cells []string) error {
	parts := make([]string, len(columns))
	for index, column := range columns {
		cell := runewidth.Truncate(cells[index], widths[index], ellipsis)
		if column.rightAlign {
			parts[index] = runewidth.FillLeft(cell, widths[index])
		} else {
			parts[index] = runewidth.FillRight(cell, widths[index])
		}
	}
	_, err := io.WriteString(out, strings.TrimRight(strings.Join(parts, columnGap), " ")+"\n")
	return err
}

// terminalWidth falls back to a fixed width when stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return defaultTableWidth
	}
	return width
}
