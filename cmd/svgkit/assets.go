package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/assets"
)

func assetsCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "assets [source]",
		Short: "Resolve built asset paths from the manifest",
		Long: `Resolve source asset paths to their content-hashed build output.

With a source argument, prints the emitted path for that asset:

  svgkit assets icons/arrow.svg
  /assets/arrow.4f2d1c8a.svg

Without arguments, lists every manifest entry. Useful for wiring
hashed URLs into templates and server-side rendering outside the
bundle.

Before the first build a single lookup passes the path through
unchanged, so dev and prod URLs stay interchangeable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			manifestPath := filepath.Join(cfg.OutputPath(), "manifest.json")

			if len(args) == 1 {
				resolved, hashed, err := resolveAsset(manifestPath, args[0], prefix)
				if err != nil {
					return err
				}
				if !hashed {
					warn("%s has no manifest entry; passing through", args[0])
				}
				fmt.Println(resolved)
				return nil
			}

			lines, err := listAssets(manifestPath, prefix)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "/", "URL prefix for resolved paths")

	return cmd
}

// resolveAsset resolves one source path through the build manifest. The
// boolean reports whether a fingerprinted entry was found; without a
// manifest the path passes through so pre-build lookups still work.
func resolveAsset(manifestPath, source, prefix string) (string, bool, error) {
	manifest, err := assets.Load(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return assets.NewPassthroughResolver(prefix).Asset(source), false, nil
		}
		return "", false, errors.New("E304").Wrap(err)
	}

	resolver := assets.NewResolver(manifest, prefix)
	return resolver.Asset(source), manifest.Has(source), nil
}

// listAssets returns every manifest entry as "source -> resolved",
// sorted by source path.
func listAssets(manifestPath, prefix string) ([]string, error) {
	manifest, err := assets.Load(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E304").
				WithDetail("No manifest at " + manifestPath).
				WithSuggestion("Run svgkit build first")
		}
		return nil, errors.New("E304").Wrap(err)
	}

	resolver := assets.NewResolver(manifest, prefix)
	entries := manifest.All()

	sources := make([]string, 0, len(entries))
	for source := range entries {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	lines := make([]string, 0, len(sources))
	for _, source := range sources {
		lines = append(lines, source+" -> "+resolver.Asset(source))
	}
	return lines, nil
}
