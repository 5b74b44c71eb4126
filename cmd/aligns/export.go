package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/export"
	"github.com/henri123lemoine/aligns/internal/view"
)

// Export-specific flag values.
var (
	exportFormat   string
	exportView     string
	exportVariable string
)

// exportCmd writes the dataset, or one view's table, to stdout.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dataset to stdout",
	Long: `Write the sample dataset to stdout as a table, JSON or YAML.

--view picks the rows a view's table shows (visualize or explore).
--variable keeps only records whose Variable Name matches exactly.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatTable,
		"output format ("+strings.Join(export.Formats, ", ")+")")
	exportCmd.Flags().StringVar(&exportView, "view", "visualize", "view whose table to export")
	exportCmd.Flags().StringVar(&exportVariable, "variable", "", "exact Variable Name to filter by")
}

func runExport(cmd *cobra.Command, _ []string) error {
	target, ok := view.Parse(exportView)
	if !ok {
		return fmt.Errorf("unknown view %q", exportView)
	}

	records, err := export.Records(dataset.Sample(), target, exportVariable)
	if err != nil {
		return err
	}
	slog.Debug("export", "view", target.Slug(), "variable", exportVariable, "records", len(records), "format", exportFormat)

	return export.Write(cmd.OutOrStdout(), exportFormat, records)
}
