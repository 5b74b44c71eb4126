package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/exec"
	"github.com/henri123lemoine/aligns/internal/web"
)

// Serve-specific flag values.
var (
	serveAddr string
	serveOpen bool
)

// serveCmd serves the dashboard to a browser.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard to a browser. Each browser keeps its own current
view. Stops on interrupt.

With --open (or [server] open_browser) the dashboard is opened using
[server] open_command, or the platform default.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides [server] addr)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard in a browser")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Addr, err)
	}

	addr := ln.Addr().String()
	url := "http://" + addr + "/"
	fmt.Fprintf(cmd.OutOrStdout(), "Serving ALIGNs at %s\n", url)

	if serveOpen || cfg.Server.OpenBrowser {
		if err := exec.OpenDetached(cfg.Server.OpenCommand, exec.Target{URL: url, Addr: addr}); err != nil {
			slog.Warn("open browser", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.New(cfg, dataset.Sample()).Serve(ctx, ln)
}
