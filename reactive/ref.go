package reactive

import (
	"sync"

	"github.com/corewave/reactive/internal"
)

// valueKey is the single key a Ref tracks and triggers under; a Ref has
// exactly one observable coordinate, unlike Reactive/ReactiveSlice which
// have one per element.
const valueKey = "value"

// Ref holds a single reactive value of type T. Reads inside an active
// effect register a dependency; writes trigger every dependent effect.
type Ref[T any] struct {
	rt     *internal.Runtime
	handle *internal.TargetHandle

	mu    sync.RWMutex
	value T
}

// NewRef returns a Ref seeded with initial, bound to the calling
// goroutine's Runtime.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{
		rt:     internal.GetRuntime(),
		handle: internal.NewTargetHandle(internal.KindPlain),
		value:  initial,
	}
}

// Get reads the current value, tracking a dependency on it.
func (r *Ref[T]) Get() T {
	r.rt.Track(r.handle, internal.TrackGet, valueKey)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Peek reads the current value without tracking a dependency.
func (r *Ref[T]) Peek() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set overwrites the value and triggers every effect depending on it.
func (r *Ref[T]) Set(v T) {
	r.mu.Lock()
	old := r.value
	r.value = v
	r.mu.Unlock()

	r.rt.Trigger(r.handle, internal.TriggerSet, valueKey, v, old, nil)
}
