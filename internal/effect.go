package internal

import "github.com/google/uuid"

// EffectOptions configures a new Effect: whether it runs immediately or
// waits for the caller to invoke it, whether it may re-trigger itself
// while running, and the hooks it wires into tracking and scheduling.
type EffectOptions struct {
	Lazy         bool
	AllowRecurse bool

	// Scheduler, if set, is invoked with the effect instead of running it
	// directly whenever trigger selects this effect. Typically installs
	// the effect into the flush scheduler's main queue.
	Scheduler func(*Effect)

	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)
	OnStop    func()

	// Owner names the component/instance this effect belongs to, purely
	// for recursion-limit diagnostics.
	Owner string
}

// Effect is a recomputable unit of work whose reads are recorded as
// dependencies. It carries a stable id, an active flag, the raw callable,
// and its dependencies as a linked list of back-references; "signal" and
// "effect" stay orthogonal concerns, handled by Graph rather than Effect.
type Effect struct {
	id      ID
	debugID string

	active       bool
	allowRecurse bool

	raw       func()
	scheduler func(*Effect)

	onTrack   func(TrackEvent)
	onTrigger func(TriggerEvent)
	onStop    func()

	owner string

	depsHead *depLink

	rt *Runtime
}

// NewEffect allocates and, unless Lazy, immediately runs a new Effect on
// rt. If fn is itself an Effect's Run method target it is not unwrapped
// here (Go has no ambient "is this callable an effect" check); fn is
// always stored and run as given.
func (rt *Runtime) NewEffect(fn func(), opts EffectOptions) *Effect {
	e := &Effect{
		id:           NewID(),
		debugID:      uuid.NewString(),
		active:       true,
		allowRecurse: opts.AllowRecurse,
		raw:          fn,
		scheduler:    opts.Scheduler,
		onTrack:      opts.OnTrack,
		onTrigger:    opts.OnTrigger,
		onStop:       opts.OnStop,
		owner:        opts.Owner,
		rt:           rt,
	}

	if !opts.Lazy {
		e.Run()
	}

	return e
}

// ID is the effect's stable, monotonic identifier. Used by the scheduler
// to order jobs parent-before-child.
func (e *Effect) ID() ID { return e.id }

// Active reports whether Stop has not yet been called on e.
func (e *Effect) Active() bool { return e.active }

// AllowRecurse reports whether e may legally cause itself to be re-queued
// while it is executing.
func (e *Effect) AllowRecurse() bool { return e.allowRecurse }

// Owner returns the diagnostic owner name, or "" if none was set.
func (e *Effect) Owner() string { return e.owner }

// Run re-executes the effect, recollecting its dependencies from scratch.
func (e *Effect) Run() {
	rt := e.rt

	// Inactive: run raw untracked if there's no scheduler, otherwise a
	// stopped effect with a scheduler is simply inert.
	if !e.active {
		if e.scheduler != nil {
			return
		}
		e.raw()
		return
	}

	// Re-entrancy guard.
	if rt.tracker.onStack(e) {
		return
	}

	// Stale dependencies are recollected from scratch on every run.
	e.ClearDeps()

	rt.tracker.EnableTracking()
	rt.tracker.pushEffect(e)

	defer func() {
		// Guaranteed on every exit path, including a panic inside raw.
		rt.tracker.popEffect()
		rt.tracker.ResetTracking()
	}()

	e.raw()
}

// Stop detaches e from the graph and disarms it. Idempotent.
func (e *Effect) Stop() {
	if !e.active {
		return
	}

	e.ClearDeps()

	if e.onStop != nil {
		e.onStop()
	}

	e.active = false
}
