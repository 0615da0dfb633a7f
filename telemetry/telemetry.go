// Package telemetry collects hierarchical phase timings for lexing,
// parsing and module loading.
//
// Collectors travel through a context.Context so instrumented code does not
// need extra parameters. When no collector is installed, FromContext returns
// a no-op collector.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("check app.js")
//	parse := timer.Child("parse")
//	parse.SetBytes(len(src))
//	parse.End()
//	timer.End()
//
//	collector.Report(os.Stderr, output.NewStyles(os.Stderr))
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/jsparse/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timings.
type Collector interface {
	// Start begins timing an operation. The first timer started becomes the
	// root of the report, later ones nest under the innermost open timer.
	Start(name string) Timer

	// Report writes the collected timings. styles may be nil for plain text.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer.
	End()

	// Child creates a nested timer.
	Child(name string) Timer

	// SetBytes records how many bytes of source the operation consumed, so
	// the report can show throughput.
	SetBytes(n int)
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context, or a no-op collector
// when none is present.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
