package internal

// Runtime bundles the effect stack/tracking flags (Tracker), the
// dependency graph (Graph), and the flush scheduler (Scheduler) into one
// handle threaded explicitly rather than held in package globals. One
// Runtime exists per goroutine (see runtime_default.go / runtime_wasm.go);
// GetRuntime() is the sole entry point callers use to reach it.
type Runtime struct {
	tracker   *Tracker
	graph     *Graph
	scheduler *Scheduler

	errorHandler ErrorHandler
	diagnostics  DiagnosticsSink

	// DevMode gates the recursion-limit diagnostics and their warnings.
	// Off by default; flip it on in tests and in development builds.
	DevMode bool
}

// NewRuntime wires a fresh Tracker, Graph, and Scheduler together.
func NewRuntime() *Runtime {
	rt := &Runtime{
		tracker: NewTracker(),
		graph:   NewGraph(),
	}
	rt.scheduler = NewScheduler(rt)
	return rt
}

// Scheduler exposes the owning Runtime's flush scheduler.
func (rt *Runtime) Scheduler() *Scheduler { return rt.scheduler }

// ActiveEffect returns the effect currently executing on this Runtime, or
// nil.
func (rt *Runtime) ActiveEffect() *Effect { return rt.tracker.ActiveEffect() }

// PauseTracking, EnableTracking, and ResetTracking manipulate the
// save/restore stack of tracking-enabled flags.
func (rt *Runtime) PauseTracking()  { rt.tracker.PauseTracking() }
func (rt *Runtime) EnableTracking() { rt.tracker.EnableTracking() }
func (rt *Runtime) ResetTracking()  { rt.tracker.ResetTracking() }

// Untrack runs fn with tracking disabled, regardless of current state.
func (rt *Runtime) Untrack(fn func()) { rt.tracker.RunUntracked(fn) }

// IterateKey and MapKeyIterateKey are this Runtime's unique iteration
// sentinels.
func (rt *Runtime) IterateKey() any       { return rt.graph.IterateKey }
func (rt *Runtime) MapKeyIterateKey() any { return rt.graph.MapKeyIterateKey }
