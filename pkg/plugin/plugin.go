// Package plugin adapts the SVG import pipeline onto esbuild's plugin
// API. OnResolve and OnLoad translate the router's tri-state
// dispositions into esbuild results; a deferred URL-mode load hands the
// file to esbuild's built-in file loader, which emits the asset and
// default-exports its URL.
package plugin

import (
	"context"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/internal/svg"
)

const namespace = "svgkit"

// filter matches any import path mentioning .svg, query included.
const filter = `\.svg`

// New creates the esbuild plugin for the given build context.
func New(c *svg.Context) api.Plugin {
	return api.Plugin{
		Name: "svgkit",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: filter}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				return onResolve(c, args)
			})
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: namespace}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return onLoad(c, args)
			})
		},
	}
}

func onResolve(c *svg.Context, args api.OnResolveArgs) (api.OnResolveResult, error) {
	imp, ok := svg.Classify(args.Path, c.DefaultMode)
	if !ok {
		// Not ours; other resolvers apply.
		return api.OnResolveResult{}, nil
	}

	if imp.Directory {
		res, err := c.Resolve(args.Path, args.Importer)
		if err != nil {
			return api.OnResolveResult{}, err
		}
		return api.OnResolveResult{Path: res.Path, Namespace: namespace}, nil
	}

	// Single files use plain filesystem resolution against the
	// importing module's directory. The namespace keeps the query
	// attached so the load phase can re-classify from the final id.
	path := imp.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(args.ResolveDir, path)
	}
	if imp.RawQuery != "" {
		path += "?" + imp.RawQuery
	}
	return api.OnResolveResult{Path: path, Namespace: namespace}, nil
}

func onLoad(c *svg.Context, args api.OnLoadArgs) (api.OnLoadResult, error) {
	res, err := c.Load(context.Background(), args.Path)
	if err != nil {
		return api.OnLoadResult{}, err
	}

	imp, _ := svg.Classify(args.Path, c.DefaultMode)

	if res.Disposition == svg.Handled {
		contents := res.Source.Code
		resolveDir := filepath.Dir(imp.Path)
		if imp.Directory {
			// Directory-module entries are working-dir-relative.
			if wd, err := os.Getwd(); err == nil {
				resolveDir = wd
			}
		}
		return api.OnLoadResult{
			Contents:   &contents,
			Loader:     api.LoaderJS,
			ResolveDir: resolveDir,
		}, nil
	}

	// URL mode deferred: esbuild's file loader emits the asset.
	raw, err := os.ReadFile(imp.Path)
	if err != nil {
		return api.OnLoadResult{}, errors.FromError(err, "E221")
	}
	contents := string(raw)
	return api.OnLoadResult{
		Contents:   &contents,
		Loader:     api.LoaderFile,
		ResolveDir: filepath.Dir(imp.Path),
	}, nil
}
