// Package export writes dashboard records as a text table, JSON or YAML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/view"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// ErrNoTable is returned when exporting a view that shows no data table.
var ErrNoTable = errors.New("view has no data table")

// Records picks the rows a view's table shows. On Visualize a variable
// filters exactly; without one the whole dataset is returned. Explore
// without a variable uses the view's default selection.
func Records(tbl *dataset.Table, target view.View, variable string) ([]dataset.Record, error) {
	switch target {
	case view.Visualize:
		if variable != "" {
			return tbl.Filter(variable), nil
		}
		return tbl.Records(), nil
	case view.Explore:
		s := view.NewSession(view.ModeUnified, view.Explore)
		if variable != "" {
			s.Select(variable)
		}
		return tbl.Filter(view.ExploreSelect(s, tbl).Selected), nil
	}
	return nil, fmt.Errorf("%s: %w", target, ErrNoTable)
}

// Write renders records to w in format.
func Write(w io.Writer, format string, records []dataset.Record) error {
	switch format {
	case FormatTable:
		return writeTable(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

func writeJSON(w io.Writer, records []dataset.Record) error {
	if records == nil {
		records = []dataset.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, records []dataset.Record) error {
	if records == nil {
		records = []dataset.Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

// writeTable writes an aligned table with a bold header. Scores are
// right-aligned.
func writeTable(w io.Writer, records []dataset.Record) error {
	headers := []string{dataset.ColumnID, dataset.ColumnName, dataset.ColumnItem, dataset.ColumnScore}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, r.ItemText, view.FormatScore(r.Score)})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	last := len(headers) - 1

	bold := color.New(color.Bold)
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = bold.Sprint(pad(h, widths[i], i == last))
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, row := range rows {
		for i, cell := range row {
			parts[i] = pad(cell, widths[i], i == last)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	if len(rows) == 0 {
		dim := color.New(color.Faint)
		if _, err := dim.Fprintln(w, "  (no rows)"); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	return nil
}

func pad(s string, width int, right bool) string {
	n := width - runewidth.StringWidth(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}
