package svg

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies pipeline spans.
const tracerName = "svgkit"

// Recorder observes router phase outcomes. pkg/metrics provides a
// Prometheus-backed implementation; a nil Recorder records nothing.
type Recorder interface {
	// ObservePhase records one phase invocation with its disposition
	// and duration. phase is "resolve", "load" or "transform".
	ObservePhase(phase string, handled bool, d time.Duration, err error)
}

// Context is the read-only build context captured once at plugin
// construction and threaded into every operation. It holds no mutable
// state, so concurrent phase invocations across modules need no
// coordination.
type Context struct {
	// Root is the project root directory.
	Root string

	// DefaultMode governs query-less SVG imports.
	DefaultMode Mode

	optimizer Optimizer
	compiler  Compiler
	tracer    trace.Tracer
	recorder  Recorder
}

// ContextOptions configure a build Context.
type ContextOptions struct {
	// Root is the project root directory.
	Root string

	// DefaultMode governs query-less SVG imports.
	DefaultMode Mode

	// Optimizer optimizes SVG sources before compilation. Required for
	// component loads.
	Optimizer Optimizer

	// Compiler compiles component wrappers. Required for component
	// loads.
	Compiler Compiler

	// TracerProvider overrides the global provider. Optional.
	TracerProvider trace.TracerProvider

	// Recorder observes phase outcomes. Optional.
	Recorder Recorder
}

// NewContext creates the build context.
func NewContext(opts ContextOptions) *Context {
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Context{
		Root:        opts.Root,
		DefaultMode: opts.DefaultMode,
		optimizer:   opts.Optimizer,
		compiler:    opts.Compiler,
		tracer:      tp.Tracer(tracerName),
		recorder:    opts.Recorder,
	}
}

// observe reports a phase outcome to the recorder, if any.
func (c *Context) observe(phase string, handled bool, start time.Time, err error) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObservePhase(phase, handled, time.Since(start), err)
}
