package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/build"
	"github.com/vango-dev/svgkit/internal/config"
)

func buildCmd() *cobra.Command {
	var (
		output     string
		minify     bool
		sourceMaps bool
		external   []string
		clean      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build for production",
		Long: `Build the project for production deployment.

This command:
  • Bundles the entry point with the SVG plugin applied
  • Compiles component imports and optimizes their markup
  • Emits URL-mode assets with content hashes
  • Generates the asset manifest

Examples:
  svgkit build
  svgkit build --output=dist
  svgkit build --external=preact --external='preact/*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(output, minify, sourceMaps, external, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from svgkit.json)")
	cmd.Flags().BoolVar(&minify, "minify", true, "Minify output")
	cmd.Flags().BoolVar(&sourceMaps, "sourcemaps", false, "Generate source maps")
	cmd.Flags().StringArrayVar(&external, "external", nil, "Import paths to leave external")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean output directory before build")

	return cmd
}

func runBuild(output string, minify, sourceMaps bool, external []string, clean bool) error {
	// Load config
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if output != "" {
		cfg.Build.Output = output
	}

	svgctx, err := newSvgContext(cfg, nil)
	if err != nil {
		return err
	}

	fmt.Println("  Building for production...")
	fmt.Println()

	builder := build.New(cfg, svgctx, build.Options{
		Minify:     minify,
		SourceMaps: sourceMaps,
		External:   external,
		OnProgress: func(step string) {
			info("%s", step)
		},
	})

	// Clean if requested
	if clean {
		info("Cleaning output directory...")
		builder.Clean()
	}

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	result, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	// Print results
	fmt.Println()
	success("Build complete in %s", result.Duration.Round(1000000))
	fmt.Println()
	fmt.Println("  Output:")
	fmt.Printf("    %s/\n", cfg.Build.Output)
	fmt.Printf("    ├── bundle          (%s)\n", formatBytes(result.BundleSize))
	fmt.Printf("    ├── assets/         (%d SVG assets)\n", result.AssetCount)
	fmt.Printf("    └── manifest.json\n")
	if result.Warnings > 0 {
		fmt.Println()
		warn("%d bundler warnings", result.Warnings)
	}
	fmt.Println()

	return nil
}
