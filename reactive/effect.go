package reactive

import "github.com/corewave/reactive/internal"

// Effect is a handle to a running internal.Effect. Stopping it detaches it
// from the graph; it will never run again.
type Effect struct {
	inner *internal.Effect
}

// Option configures an Effect, Watch, or WatchEffect at creation time.
type Option func(*internal.EffectOptions)

// WithOwner names the component/instance an effect belongs to, purely for
// recursion-limit diagnostics.
func WithOwner(name string) Option {
	return func(o *internal.EffectOptions) { o.Owner = name }
}

// WithOnTrack installs a debugger hook fired the first time an effect
// links to a given dependency on a run.
func WithOnTrack(fn func(internal.TrackEvent)) Option {
	return func(o *internal.EffectOptions) { o.OnTrack = fn }
}

// WithOnTrigger installs a debugger hook fired when a write causes an
// effect to be selected for (re)execution.
func WithOnTrigger(fn func(internal.TriggerEvent)) Option {
	return func(o *internal.EffectOptions) { o.OnTrigger = fn }
}

// NewEffect runs fn immediately and reruns it synchronously, in place,
// whenever a reactive value it read changes. Use Watch or WatchEffect
// instead when reruns should go through the flush scheduler rather than
// running inline inside trigger.
func NewEffect(fn func(), opts ...Option) *Effect {
	o := internal.EffectOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Effect{inner: internal.GetRuntime().NewEffect(fn, o)}
}

// Active reports whether Stop has not yet been called.
func (e *Effect) Active() bool { return e.inner.Active() }

// Stop detaches the effect from the graph; it will never run again.
func (e *Effect) Stop() { e.inner.Stop() }
