package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/dev"
	"github.com/vango-dev/svgkit/pkg/metrics"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with hot reload.

The dev server serves your project files directly and compiles SVG
modules on demand, the same way the bundler plugin does in a
production build. Saving an SVG refreshes connected browsers.

Features:
  • Hot reload on file change
  • Error overlay in browser
  • On-demand component compilation
  • Pipeline metrics on /metrics

Examples:
  svgkit dev
  svgkit dev --port=8080
  svgkit dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from svgkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from svgkit.json)")

	return cmd
}

func runDev(port int, host string) error {
	// Load config
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.New(metrics.WithRegistry(registry))

	svgctx, err := newSvgContext(cfg, recorder)
	if err != nil {
		return err
	}

	// Print banner
	printBanner()
	fmt.Println("  dev")
	fmt.Println()
	info("Serving %s at %s", cfg.Dir(), cfg.DevURL())
	if !cfg.Dev.HotReload {
		warn("Hot reload is disabled in svgkit.json")
	}
	fmt.Println()

	server := dev.NewServer(dev.ServerOptions{
		Config:   cfg,
		Context:  svgctx,
		Registry: registry,
		Verbose:  true,
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	})

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		server.Stop()
	}()

	return server.Start(ctx)
}
