// Package compile turns component wrapper source into final module code.
//
// The compiler is an external collaborator reached through the
// svg.Compiler interface; this package provides the esbuild-backed
// implementation. Wrappers are JSX with an automatic runtime, so the
// emitted module imports its render function from the configured JSX
// import source.
package compile

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/internal/svg"
)

// DefaultImportSource is the JSX runtime used when none is configured.
const DefaultImportSource = "preact"

// ESBuild compiles component wrappers with esbuild's transform API.
type ESBuild struct {
	// ImportSource is the JSX automatic-runtime import source.
	ImportSource string

	// Minify enables whitespace/identifier minification of the
	// compiled module.
	Minify bool
}

// New creates an ESBuild compiler with defaults.
func New() *ESBuild {
	return &ESBuild{ImportSource: DefaultImportSource}
}

// Compile implements svg.Compiler. Source maps are always generated and
// no input source map is consumed: the wrapper is synthesized, so there
// is nothing upstream to chain from.
func (e *ESBuild) Compile(_ context.Context, source string, opts svg.CompileOptions) (svg.Source, error) {
	importSource := e.ImportSource
	if importSource == "" {
		importSource = DefaultImportSource
	}

	// The source map records the module relative to the project root;
	// diagnostics point at the full module path.
	sourcefile := opts.SourceFileName
	if sourcefile == "" {
		sourcefile = opts.Filename
	}
	if opts.Root != "" {
		if rel, err := filepath.Rel(opts.Root, sourcefile); err == nil && !strings.HasPrefix(rel, "..") {
			sourcefile = filepath.ToSlash(rel)
		}
	}

	result := api.Transform(source, api.TransformOptions{
		Loader:            api.LoaderJSX,
		JSX:               api.JSXAutomatic,
		JSXImportSource:   importSource,
		Format:            api.FormatESModule,
		Target:            api.ES2022,
		Sourcemap:         api.SourceMapExternal,
		Sourcefile:        sourcefile,
		MinifyWhitespace:  e.Minify,
		MinifyIdentifiers: e.Minify,
		MinifySyntax:      e.Minify,
	})

	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		serr := errors.New("E223").WithDetail(msg.Text)
		if msg.Location != nil {
			file := opts.Filename
			if file == "" {
				file = sourcefile
			}
			serr.Location = &errors.Location{
				File:   file,
				Line:   msg.Location.Line,
				Column: msg.Location.Column,
			}
			serr.Context = []string{msg.Location.LineText}
		}
		return svg.Source{}, serr
	}

	return svg.Source{
		Code: string(result.Code),
		Map:  string(result.Map),
	}, nil
}
