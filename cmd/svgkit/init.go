package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
)

func initCmd() *cobra.Command {
	var defaultExport string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a svgkit.json in the current directory",
		Long: `Write a svgkit.json with default settings.

Examples:
  svgkit init
  svgkit init --default-export=url my-app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, defaultExport)
		},
	}

	cmd.Flags().StringVar(&defaultExport, "default-export", config.ExportComponent, `What a bare SVG import produces ("component" or "url")`)

	return cmd
}

func runInit(dir, defaultExport string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if config.Exists(dir) {
		warn("svgkit.json already exists in %s", dir)
		return nil
	}

	cfg := config.New()
	cfg.Name = filepath.Base(absDir(dir))
	cfg.DefaultExport = defaultExport
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	success("Created %s", path)
	fmt.Println()
	info("Next steps:")
	info("  svgkit dev     start the development server")
	info("  svgkit build   build for production")

	return nil
}

func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
