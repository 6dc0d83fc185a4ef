package reactive

import "github.com/corewave/reactive/internal"

// CleanupFunc registers fn to run before the next invocation, and once
// more when the watcher is stopped.
type CleanupFunc func(fn func())

// scheduledOptions builds the EffectOptions shared by Watch and
// WatchEffect: the effect is requeued through the flush scheduler rather
// than run inline, and is allowed to re-trigger itself while running.
// Any user-supplied OnStop is wrapped so the pending cleanup still runs
// when the watcher is explicitly stopped.
func scheduledOptions(rt *internal.Runtime, runCleanup func(), opts []Option) internal.EffectOptions {
	o := internal.EffectOptions{AllowRecurse: true}
	for _, opt := range opts {
		opt(&o)
	}

	userOnStop := o.OnStop
	o.OnStop = func() {
		runCleanup()
		if userOnStop != nil {
			userOnStop()
		}
	}

	o.Scheduler = func(e *internal.Effect) {
		rt.Scheduler().QueueJob(internal.EffectJob{Effect: e})
	}

	return o
}

// WatchEffect immediately runs fn, tracking every reactive value it reads,
// and reschedules it through the flush queue whenever any of them change.
// fn may register a cleanup via onCleanup, run just before the next rerun
// and once more when the returned Effect is stopped.
func WatchEffect(fn func(onCleanup CleanupFunc), opts ...Option) *Effect {
	rt := internal.GetRuntime()

	var cleanup func()
	runCleanup := func() {
		if cleanup != nil {
			c := cleanup
			cleanup = nil
			c()
		}
	}

	o := scheduledOptions(rt, runCleanup, opts)

	eff := rt.NewEffect(func() {
		runCleanup()
		fn(func(c func()) { cleanup = c })
	}, o)

	return &Effect{inner: eff}
}

// Watch tracks source and invokes cb with the new and previous values
// every time source reruns because a value it read was written. The values
// are not compared: cb runs even when the new value equals the previous
// one. The initial call to source happens eagerly (to collect
// dependencies) but does not itself invoke cb, matching a non-immediate
// watcher.
func Watch[T any](source func() T, cb func(newVal, oldVal T, onCleanup CleanupFunc), opts ...Option) *Effect {
	rt := internal.GetRuntime()

	var cleanup func()
	runCleanup := func() {
		if cleanup != nil {
			c := cleanup
			cleanup = nil
			c()
		}
	}

	o := scheduledOptions(rt, runCleanup, opts)

	var old T
	first := true

	eff := rt.NewEffect(func() {
		newVal := source()
		if first {
			old = newVal
			first = false
			return
		}
		prev := old
		old = newVal
		runCleanup()
		cb(newVal, prev, func(c func()) { cleanup = c })
	}, o)

	return &Effect{inner: eff}
}
