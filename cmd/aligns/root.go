package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/aligns/internal/app"
	"github.com/henri123lemoine/aligns/internal/config"
	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/log"
	"github.com/henri123lemoine/aligns/internal/ui"
)

// Global flag values.
var (
	configPath string
	debugFile  string
	verbose    bool
	quiet      bool
	noColor    bool
)

// rootCmd runs the terminal dashboard.
var rootCmd = &cobra.Command{
	Use:   "aligns",
	Short: "Psychometric analysis dashboard",
	Long: `ALIGNs is a small psychometric analysis dashboard. It shows a sample
of survey items with their emotional distress scores as tables, bar charts
and definitions, across five views: Home, Visualize, Explore, Explore Factor
and Implicit Definition.

Run without a subcommand to open the terminal dashboard, or use "serve" to
open it in a browser.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		log.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		if debugFile != "" {
			if err := log.EnableFile(debugFile); err != nil {
				return fmt.Errorf("enable debug log: %w", err)
			}
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	// Finalizers run even when RunE fails.
	cobra.OnFinalize(log.Close)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&debugFile, "debug", "", "write debug logs to `file`")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config file, or the default location, and logs
// validation warnings.
func loadConfig() (*config.Config, error) {
	path := resolvedConfigPath()
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Validate() {
		slog.Warn("config", "path", path, "warning", w)
	}
	return cfg, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ui.ApplyTheme(cfg.UI.Theme)

	// The dashboard owns the terminal; only a debug file may receive logs.
	if !log.Active() {
		log.Discard()
	}

	model := app.New(cfg, dataset.Sample())
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	if m, ok := finalModel.(app.Model); ok {
		slog.Debug("dashboard closed", "view", m.Session().Current().Slug(), "quit", m.ShouldQuit())
	}
	return nil
}
