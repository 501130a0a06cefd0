package domain

import "go.trai.ch/zerr"

var (
	// ErrMixedTargetKinds is returned when the targets grouped into one chunk
	// are bound to different compiler backends. A chunk is compiled by a
	// single compiler invocation, so this is a fatal configuration error.
	ErrMixedTargetKinds = zerr.New("chunk members use different compiler kinds")

	// ErrEmptyChunk is returned when a chunk is constructed without targets.
	ErrEmptyChunk = zerr.New("chunk has no targets")

	// ErrTargetsNotLoaded is returned when a lookup requires target bindings
	// but target loading has not run yet.
	ErrTargetsNotLoaded = zerr.New("targets not loaded")

	// ErrTargetNotBound is returned when a target has no engine binding.
	ErrTargetNotBound = zerr.New("target not bound")

	// ErrChunkNotFound is returned when no chunk matches a raw module group.
	ErrChunkNotFound = zerr.New("chunk not found")

	// ErrLifecycle is returned when a compile-context operation is invoked
	// out of its one-directional lifecycle order.
	ErrLifecycle = zerr.New("compile context lifecycle violation")

	// ErrMissingDependency is returned when a module references a dependency
	// that is not declared in the project configuration.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrUnknownPlatform is returned when a module declares a platform the
	// engine has no backend for.
	ErrUnknownPlatform = zerr.New("unknown platform")
)
