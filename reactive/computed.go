package reactive

import (
	"sync"

	"github.com/corewave/reactive/internal"
)

// Computed is a lazily-recomputed derived value. Reading it tracks a
// dependency the same way Ref.Get does; the expensive getter only reruns
// after a dependency it last read has been written, not on every Get. A
// write marks it stale even when the new value equals the old one.
type Computed[T any] struct {
	rt     *internal.Runtime
	handle *internal.TargetHandle
	eff    *internal.Effect

	mu    sync.Mutex
	dirty bool
	value T
}

// NewComputed returns a Computed deriving its value from getter. getter is
// not invoked until the first Get.
func NewComputed[T any](getter func() T) *Computed[T] {
	c := &Computed[T]{
		rt:     internal.GetRuntime(),
		handle: internal.NewTargetHandle(internal.KindPlain),
		dirty:  true,
	}

	c.eff = c.rt.NewEffect(func() {
		v := getter()
		c.mu.Lock()
		c.value = v
		c.mu.Unlock()
	}, internal.EffectOptions{
		Lazy: true,
		// The effect never runs itself on trigger; it only flips dirty
		// and, the first time it does, notifies whoever is depending on
		// this Computed's own value.
		Scheduler: func(*internal.Effect) {
			c.mu.Lock()
			wasDirty := c.dirty
			c.dirty = true
			c.mu.Unlock()

			if !wasDirty {
				c.rt.Trigger(c.handle, internal.TriggerSet, valueKey, nil, nil, nil)
			}
		},
	})

	return c
}

// Get returns the current value, recomputing it first if a dependency has
// changed since the last Get.
func (c *Computed[T]) Get() T {
	c.rt.Track(c.handle, internal.TrackGet, valueKey)

	c.mu.Lock()
	dirty := c.dirty
	c.mu.Unlock()

	if dirty {
		c.eff.Run()
		c.mu.Lock()
		c.dirty = false
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Stop detaches the underlying effect; Get afterwards keeps returning the
// last computed value forever (it is never marked dirty again).
func (c *Computed[T]) Stop() { c.eff.Stop() }
