package svg

import (
	"context"
	"time"
)

// Disposition says whether a phase handled the module or defers to the
// host. A discriminated result keeps "handled with empty output" distinct
// from "no opinion".
type Disposition int

const (
	// Deferred means the phase has no opinion; the host's other
	// resolvers and loaders apply.
	Deferred Disposition = iota

	// Handled means the phase produced a result.
	Handled
)

// ResolveResult is the outcome of the resolve phase.
type ResolveResult struct {
	Disposition Disposition

	// Path is the canonical module path, set when handled.
	Path string
}

// LoadResult is the outcome of the load phase.
type LoadResult struct {
	Disposition Disposition

	// Source is the generated module, set when handled.
	Source Source
}

// TransformResult is the outcome of the transform phase.
type TransformResult struct {
	Disposition Disposition

	// Code is the (unchanged) module source, set when handled.
	Code string
}

// Resolve is the resolve-phase entry point. Directory-pattern imports
// resolve to their canonical path here; single-file imports defer to the
// host's filesystem resolution and are re-classified at load time.
func (c *Context) Resolve(id, importer string) (ResolveResult, error) {
	start := time.Now()

	imp, ok := Classify(id, c.DefaultMode)
	if !ok || !imp.Directory {
		c.observe("resolve", false, start, nil)
		return ResolveResult{Disposition: Deferred}, nil
	}

	path, err := ResolveDir(id, importer)
	if err != nil {
		c.observe("resolve", true, start, err)
		return ResolveResult{}, err
	}

	c.observe("resolve", true, start, nil)
	return ResolveResult{Disposition: Handled, Path: path}, nil
}

// Load is the load-phase entry point. Directory patterns expand into a
// lazy-loader module, component imports run the content pipeline, and
// URL imports defer to the host's built-in asset emission.
func (c *Context) Load(ctx context.Context, id string) (LoadResult, error) {
	start := time.Now()

	imp, ok := Classify(id, c.DefaultMode)
	if !ok {
		c.observe("load", false, start, nil)
		return LoadResult{Disposition: Deferred}, nil
	}

	switch {
	case imp.Directory:
		src, err := Expand(id, imp.Mode, c.DefaultMode)
		c.observe("load", true, start, err)
		if err != nil {
			return LoadResult{}, err
		}
		return LoadResult{Disposition: Handled, Source: src}, nil

	case imp.Mode == ModeComponent:
		src, err := c.CompileComponent(ctx, imp)
		c.observe("load", true, start, err)
		if err != nil {
			return LoadResult{}, err
		}
		return LoadResult{Disposition: Handled, Source: src}, nil
	}

	// URL mode: the host emits the asset.
	c.observe("load", false, start, nil)
	return LoadResult{Disposition: Deferred}, nil
}

// Transform is the transform-phase entry point. URL-mode imports pass
// through explicitly so the host applies no further processing; every
// other module defers.
func (c *Context) Transform(code, id string) TransformResult {
	start := time.Now()

	imp, ok := Classify(id, c.DefaultMode)
	if ok && imp.Mode == ModeURL {
		c.observe("transform", true, start, nil)
		return TransformResult{Disposition: Handled, Code: code}
	}

	c.observe("transform", false, start, nil)
	return TransformResult{Disposition: Deferred}
}
