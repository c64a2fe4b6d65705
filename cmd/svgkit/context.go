package main

import (
	"github.com/vango-dev/svgkit/internal/compile"
	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/svg"
	"github.com/vango-dev/svgkit/internal/svgo"
)

// newSvgContext builds the pipeline context from project configuration.
func newSvgContext(cfg *config.Config, recorder svg.Recorder) (*svg.Context, error) {
	mode, err := svg.ParseMode(cfg.DefaultExport)
	if err != nil {
		return nil, err
	}

	return svg.NewContext(svg.ContextOptions{
		Root:        cfg.Dir(),
		DefaultMode: mode,
		Optimizer:   newOptimizer(cfg),
		Compiler:    compile.New(),
		Recorder:    recorder,
	}), nil
}

// newOptimizer returns the configured optimizer, or a passthrough when
// optimization is disabled.
func newOptimizer(cfg *config.Config) svg.Optimizer {
	if !cfg.Svgo.Enabled {
		return svgo.Passthrough{}
	}
	return svgo.NewRunner(cfg.Svgo.Binary, cfg.SvgoConfigPath())
}
