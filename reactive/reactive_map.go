package reactive

import (
	"sync"

	"github.com/corewave/reactive/internal"
)

// Reactive is a map-like reactive container keyed by K. Per-key reads and
// writes are tracked individually; Keys and ForEach additionally register
// the iteration-wide dependencies spec'd for map-like targets (adding or
// removing a key reruns any effect that enumerated the map, not just one
// that read the changed key).
type Reactive[K comparable, V any] struct {
	rt     *internal.Runtime
	handle *internal.TargetHandle

	mu    sync.RWMutex
	items map[K]V
}

// NewReactive returns an empty reactive map bound to the calling
// goroutine's Runtime.
func NewReactive[K comparable, V any]() *Reactive[K, V] {
	return &Reactive[K, V]{
		rt:     internal.GetRuntime(),
		handle: internal.NewTargetHandle(internal.KindMap),
		items:  make(map[K]V),
	}
}

// Get returns the value at key and whether it was present, tracking a
// dependency on that key.
func (r *Reactive[K, V]) Get(key K) (V, bool) {
	r.rt.Track(r.handle, internal.TrackGet, key)
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	return v, ok
}

// Has reports whether key is present, tracking a dependency on that key.
func (r *Reactive[K, V]) Has(key K) bool {
	r.rt.Track(r.handle, internal.TrackHas, key)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[key]
	return ok
}

// Set writes key, triggering the key's own dep plus, when key is new, the
// map's iteration deps.
func (r *Reactive[K, V]) Set(key K, val V) {
	r.mu.Lock()
	_, existed := r.items[key]
	var old V
	if existed {
		old = r.items[key]
	}
	r.items[key] = val
	r.mu.Unlock()

	if existed {
		r.rt.Trigger(r.handle, internal.TriggerSet, key, val, old, nil)
		return
	}
	r.rt.Trigger(r.handle, internal.TriggerAdd, key, val, nil, nil)
}

// Delete removes key if present, triggering the key's own dep plus the
// map's iteration deps. A miss is a silent no-op.
func (r *Reactive[K, V]) Delete(key K) {
	r.mu.Lock()
	old, existed := r.items[key]
	if existed {
		delete(r.items, key)
	}
	r.mu.Unlock()

	if !existed {
		return
	}
	r.rt.Trigger(r.handle, internal.TriggerDelete, key, nil, old, nil)
}

// Len returns the number of entries, tracking the same iteration
// dependency Keys does (its count changes on exactly the same writes).
func (r *Reactive[K, V]) Len() int {
	r.rt.Track(r.handle, internal.TrackIterate, r.rt.MapKeyIterateKey())
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Keys returns a snapshot of the current keys, tracking the map-key
// iteration dependency (mirrors a JS Map's .keys()).
func (r *Reactive[K, V]) Keys() []K {
	r.rt.Track(r.handle, internal.TrackIterate, r.rt.MapKeyIterateKey())
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	return keys
}

// ForEach visits every entry in an unspecified order, tracking the general
// iteration dependency (mirrors entries()/values()/for...in, distinct from
// Keys' map-key-iterate dependency).
func (r *Reactive[K, V]) ForEach(fn func(K, V)) {
	r.rt.Track(r.handle, internal.TrackIterate, r.rt.IterateKey())
	r.mu.RLock()
	snapshot := make(map[K]V, len(r.items))
	for k, v := range r.items {
		snapshot[k] = v
	}
	r.mu.RUnlock()

	for k, v := range snapshot {
		fn(k, v)
	}
}

// Clear empties the map, triggering every dep it held.
func (r *Reactive[K, V]) Clear() {
	r.mu.Lock()
	r.items = make(map[K]V)
	r.mu.Unlock()

	r.rt.Trigger(r.handle, internal.TriggerClear, nil, nil, nil, nil)
}
