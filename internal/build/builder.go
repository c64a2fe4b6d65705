package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/internal/svg"
	"github.com/vango-dev/svgkit/pkg/assets"
	"github.com/vango-dev/svgkit/pkg/plugin"
)

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Outdir is the output directory.
	Outdir string

	// Manifest maps source asset paths to their emitted names.
	Manifest *assets.Manifest

	// BundleSize is the size of the entry bundle in bytes.
	BundleSize int64

	// AssetCount is the number of emitted SVG assets.
	AssetCount int

	// Warnings is the number of bundler warnings.
	Warnings int
}

// Options configures the builder.
type Options struct {
	// Minify enables minification.
	Minify bool

	// SourceMaps enables source map generation.
	SourceMaps bool

	// External marks import paths as external to the bundle.
	External []string

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder handles production builds.
type Builder struct {
	config  *config.Config
	svgctx  *svg.Context
	options Options
}

// New creates a new builder. Option zero values inherit from the
// project configuration.
func New(cfg *config.Config, svgctx *svg.Context, options Options) *Builder {
	if !options.Minify && cfg.Build.Minify {
		options.Minify = true
	}
	if !options.SourceMaps && cfg.Build.SourceMaps {
		options.SourceMaps = true
	}

	return &Builder{
		config:  cfg,
		svgctx:  svgctx,
		options: options,
	}
}

// Build performs a production build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputDir := b.config.OutputPath()

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.New("E301").Wrap(err)
	}

	b.progress("Bundling...")
	sourcemap := api.SourceMapNone
	if b.options.SourceMaps {
		sourcemap = api.SourceMapLinked
	}

	buildResult := api.Build(api.BuildOptions{
		EntryPoints:       []string{b.config.EntryPath()},
		AbsWorkingDir:     b.config.Dir(),
		Bundle:            true,
		Write:             true,
		Outdir:            outputDir,
		Format:            api.FormatESModule,
		EntryNames:        "[name]",
		AssetNames:        "assets/[name].[hash]",
		MinifyWhitespace:  b.options.Minify,
		MinifyIdentifiers: b.options.Minify,
		MinifySyntax:      b.options.Minify,
		Sourcemap:         sourcemap,
		Metafile:          true,
		External:          b.options.External,
		Plugins:           []api.Plugin{plugin.New(b.svgctx)},
	})

	if len(buildResult.Errors) > 0 {
		return nil, bundleError(buildResult.Errors[0])
	}

	b.progress("Writing manifest...")
	manifest, err := manifestFromMetafile(buildResult.Metafile, b.config.Dir(), outputDir)
	if err != nil {
		return nil, err
	}
	if err := manifest.Save(filepath.Join(outputDir, "manifest.json")); err != nil {
		return nil, errors.New("E303").Wrap(err)
	}

	result := &Result{
		Duration:   time.Since(start),
		Outdir:     outputDir,
		Manifest:   manifest,
		AssetCount: manifest.Len(),
		Warnings:   len(buildResult.Warnings),
	}

	entryName := strings.TrimSuffix(filepath.Base(b.config.EntryPath()), filepath.Ext(b.config.EntryPath())) + ".js"
	if info, err := os.Stat(filepath.Join(outputDir, entryName)); err == nil {
		result.BundleSize = info.Size()
	}

	return result, nil
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.config.OutputPath())
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// bundleError converts an esbuild message into a build error.
func bundleError(msg api.Message) error {
	err := errors.New("E302").WithDetail(msg.Text)
	if msg.Location != nil {
		err = err.WithLocation(msg.Location.File, msg.Location.Line, msg.Location.Column)
	}
	return err
}

// metafile mirrors the subset of esbuild's metafile we read.
type metafile struct {
	Outputs map[string]struct {
		Inputs map[string]struct {
			BytesInOutput int `json:"bytesInOutput"`
		} `json:"inputs"`
	} `json:"outputs"`
}

// manifestFromMetafile derives the asset manifest from the bundle
// metafile. Every emitted .svg output maps back to its source file,
// both sides relative to their respective roots.
func manifestFromMetafile(data, projectDir, outputDir string) (*assets.Manifest, error) {
	var meta metafile
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, errors.New("E303").
			WithDetail("Failed to parse bundle metafile: " + err.Error())
	}

	manifest := assets.NewManifest()
	for outPath, output := range meta.Outputs {
		if !strings.EqualFold(filepath.Ext(outPath), ".svg") {
			continue
		}
		for inPath := range output.Inputs {
			source := sourcePath(inPath, projectDir)
			emitted, err := filepath.Rel(outputDir, absPath(outPath, projectDir))
			if err != nil {
				emitted = outPath
			}
			manifest.Set(filepath.ToSlash(source), filepath.ToSlash(emitted))
		}
	}
	return manifest, nil
}

// sourcePath normalizes a metafile input path: the plugin namespace
// prefix and query are stripped, and the path is made project-relative.
func sourcePath(inPath, projectDir string) string {
	if idx := strings.Index(inPath, ":/"); idx != -1 {
		inPath = inPath[idx+1:]
	}
	inPath, _, _ = strings.Cut(inPath, "?")
	if rel, err := filepath.Rel(projectDir, absPath(inPath, projectDir)); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return inPath
}

func absPath(path, base string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
