package svg

import (
	"context"
	"os"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/svgkit/internal/errors"
)

// Source is generated module source returned from the load phase. It is
// recomputed on every load; caching is the host bundler's responsibility.
type Source struct {
	// Code is the module source text.
	Code string

	// Map is the source map JSON, empty when none was produced.
	Map string
}

// Optimizer optimizes raw SVG bytes into markup text. Implementations
// merge project-level optimizer configuration themselves.
type Optimizer interface {
	Optimize(ctx context.Context, content []byte, path string) (string, error)
}

// CompileOptions identify the module being compiled within the build.
type CompileOptions struct {
	// Root is the project root directory.
	Root string

	// Filename is the module path being compiled.
	Filename string

	// SourceFileName is the name recorded in the source map.
	SourceFileName string
}

// Compiler compiles component wrapper source into final module code.
// Source maps are always generated; input source maps are never consumed.
type Compiler interface {
	Compile(ctx context.Context, source string, opts CompileOptions) (Source, error)
}

// svgRootRe matches the root <svg> tag up to its closing ">", keeping a
// self-closing "/>" intact.
var svgRootRe = regexp.MustCompile(`(?s)(<svg[^>]*?)(/?>)`)

// braceEscaper rewrites literal braces as quoted-literal brace
// expressions so SVG text content survives the templating syntax of the
// generated component.
var braceEscaper = strings.NewReplacer("{", `{'{'}`, "}", `{'}'}`)

// componentWrapper turns optimized SVG markup into component source: a
// default-exported function that spreads its props onto the root <svg>
// element, letting callers override attributes like class and fill.
func componentWrapper(markup string) string {
	escaped := braceEscaper.Replace(strings.TrimSpace(markup))
	spliced := escaped
	// Splice into the first (root) tag only.
	if m := svgRootRe.FindStringSubmatchIndex(escaped); m != nil {
		spliced = escaped[:m[3]] + " {...props}" + escaped[m[3]:]
	}
	return "export default (props = {}) => (\n" + spliced + "\n)"
}

// CompileComponent runs the content pipeline for a single-file component
// import: read, optimize, wrap, compile. The steps are strictly
// sequential; each failure aborts the module and propagates to the host
// with no retry and no fallback to partial output.
func (c *Context) CompileComponent(ctx context.Context, imp Import) (Source, error) {
	ctx, span := c.tracer.Start(ctx, "svg.compile_component")
	span.SetAttributes(attribute.String("svg.path", imp.Path))
	defer span.End()

	fail := func(err error, code string) (Source, error) {
		serr := errors.FromError(err, code)
		span.RecordError(serr)
		span.SetStatus(codes.Error, serr.Error())
		return Source{}, serr
	}

	raw, err := os.ReadFile(imp.Path)
	if err != nil {
		return fail(err, "E221")
	}

	markup, err := c.optimizer.Optimize(ctx, raw, imp.Path)
	if err != nil {
		return fail(err, "E222")
	}

	src, err := c.compiler.Compile(ctx, componentWrapper(markup), CompileOptions{
		Root:           c.Root,
		Filename:       imp.Path,
		SourceFileName: imp.Path,
	})
	if err != nil {
		return fail(err, "E223")
	}

	return src, nil
}
