package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for recording engine phases and per-chunk
// decisions.
type Tracer interface {
	// Start begins recording a unit of work.
	Start(ctx context.Context, name string) (context.Context, Span)

	// Close flushes and closes the recording session.
	Close() error
}

// Span represents one recorded unit of work.
type Span interface {
	io.Writer

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)

	// Cached marks the unit as satisfied from cache.
	Cached()

	// End completes the span, recording err if non-nil.
	End(err error)
}
