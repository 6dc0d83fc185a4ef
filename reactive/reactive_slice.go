package reactive

import (
	"sync"

	"github.com/corewave/reactive/internal"
)

const lengthKey = "length"

// ReactiveSlice is an array-like reactive container. Index reads/writes
// are tracked per-index; Len is tracked under the "length" key exactly as
// spec'd for array-like targets, so truncating or growing the slice
// reruns anything that only read its length.
type ReactiveSlice[T any] struct {
	rt     *internal.Runtime
	handle *internal.TargetHandle

	mu    sync.RWMutex
	items []T
}

// NewReactiveSlice returns an empty reactive slice bound to the calling
// goroutine's Runtime.
func NewReactiveSlice[T any]() *ReactiveSlice[T] {
	return &ReactiveSlice[T]{
		rt:     internal.GetRuntime(),
		handle: internal.NewTargetHandle(internal.KindSlice),
		items:  nil,
	}
}

// Get returns the element at i, tracking a dependency on that index.
func (s *ReactiveSlice[T]) Get(i int) T {
	s.rt.Track(s.handle, internal.TrackGet, i)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[i]
}

// Len returns the slice's length, tracking the length dependency.
func (s *ReactiveSlice[T]) Len() int {
	s.rt.Track(s.handle, internal.TrackGet, lengthKey)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Set overwrites the element at i, triggering that index's dep.
func (s *ReactiveSlice[T]) Set(i int, v T) {
	s.mu.Lock()
	old := s.items[i]
	s.items[i] = v
	s.mu.Unlock()

	s.rt.Trigger(s.handle, internal.TriggerSet, i, v, old, nil)
}

// Append grows the slice by one, triggering both the new index's dep (if
// anything, improbably, already held one) and the length dep, per the
// array-ADD rule.
func (s *ReactiveSlice[T]) Append(v T) {
	s.mu.Lock()
	idx := len(s.items)
	s.items = append(s.items, v)
	s.mu.Unlock()

	s.rt.Trigger(s.handle, internal.TriggerAdd, idx, v, nil, nil)
}

// Delete removes the element at i, shifting later elements down one
// index, then triggers the vacated index's dep and shrinks the length via
// the same length-write path Set("length", n) would use, so every effect
// depending on a now out-of-range index reruns.
func (s *ReactiveSlice[T]) Delete(i int) {
	s.mu.Lock()
	old := s.items[i]
	newLen := len(s.items) - 1
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()

	s.rt.Trigger(s.handle, internal.TriggerDelete, i, nil, old, nil)
	s.rt.Trigger(s.handle, internal.TriggerSet, lengthKey, newLen, newLen+1, nil)
}

// Clear empties the slice, triggering every dep it held.
func (s *ReactiveSlice[T]) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.rt.Trigger(s.handle, internal.TriggerClear, nil, nil, nil, nil)
}

// Slice returns a snapshot copy of the backing slice, tracking the
// whole-container iterate dependency (mirrors ranging over a JS array).
func (s *ReactiveSlice[T]) Slice() []T {
	s.rt.Track(s.handle, internal.TrackIterate, s.rt.IterateKey())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
