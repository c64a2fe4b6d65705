package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┬┌─┐┬┌─┬┌┬┐
  └─┐└┐┌┘│ ┬├┴┐│ │
  └─┘ └┘ └─┘┴ ┴┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "svgkit",
		Short: "SVG imports for your bundler",
		Long: `svgkit turns SVG files into first-class modules.

Import an SVG and get a component, a URL reference, or a whole
directory of icons as a lazy-loading module:

  import Arrow from "./icons/arrow.svg"         // component
  import arrowUrl from "./icons/arrow.svg?url"  // asset URL
  import icons from "./icons/[name].svg"        // directory module

Features:
  • Component compilation with optional SVGO optimization
  • Content-hashed asset emission and manifest
  • Hot reload development server
  • One-command deploys to S3-compatible storage`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		initCmd(),
		devCmd(),
		buildCmd(),
		assetsCmd(),
		deployCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the svgkit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
