// Package reactive is the public surface built on top of internal's
// effect/graph/scheduler core: Ref, Reactive, ReactiveSlice, Effect, Watch,
// WatchEffect, and Computed. Everything here is a thin, typed wrapper —
// the tracking and scheduling decisions all live in internal.
package reactive

import (
	"github.com/corewave/reactive/errors"
	"github.com/corewave/reactive/internal"
)

// Configure routes recovered panics on the calling goroutine's Runtime to
// the reporter installed with errors.SetReporter, and, when devMode is
// true, wires the console diagnostics sink. No reporter is installed by
// default, so until errors.SetReporter is called panics are still dropped.
// Call it once per goroutine before relying on recursion-limit warnings or
// panic reporting; it is safe to skip entirely (panics are then swallowed,
// matching internal's zero-overhead default).
func Configure(devMode bool) {
	rt := internal.GetRuntime()
	rt.DevMode = devMode
	errors.Wire(rt)
	if devMode {
		errors.WireDiagnostics(rt)
	}
}

// NextTick returns a future that resolves after the next (or currently
// in-flight) drain completes, optionally chaining fn onto it.
func NextTick(fn func()) *internal.Future {
	return internal.GetRuntime().Scheduler().NextTick(fn)
}

// Untrack runs fn with dependency tracking disabled for its duration.
func Untrack(fn func()) {
	internal.GetRuntime().Untrack(fn)
}
