package internal

import (
	"runtime"
	"sync"
	"weak"
)

// weakTargetMap holds target -> keyMap entries without keeping the target
// alive. Go has no built-in weak map, but it has had weak.Pointer and
// runtime.AddCleanup since 1.24: we key on weak.Pointer[TargetHandle]
// (comparable, cheap) and register a cleanup on the TargetHandle itself
// that evicts its entry once the handle becomes unreachable. This lets a
// target be garbage-collected once user code drops its last strong
// reference, even if the graph once tracked it.
type weakTargetMap struct {
	mu      sync.Mutex
	entries map[weak.Pointer[TargetHandle]]keyMap
}

func newWeakTargetMap() *weakTargetMap {
	return &weakTargetMap{
		entries: make(map[weak.Pointer[TargetHandle]]keyMap),
	}
}

// getOrCreate returns target's key-map, creating it (and arming the
// eviction cleanup) on first use.
func (m *weakTargetMap) getOrCreate(target *TargetHandle) keyMap {
	wp := weak.Make(target)

	m.mu.Lock()
	defer m.mu.Unlock()

	if km, ok := m.entries[wp]; ok {
		return km
	}

	km := make(keyMap)
	m.entries[wp] = km

	runtime.AddCleanup(target, m.evict, wp)

	return km
}

// get returns target's key-map, or nil if target was never tracked or has
// already been collected and evicted.
func (m *weakTargetMap) get(target *TargetHandle) keyMap {
	wp := weak.Make(target)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entries[wp]
}

func (m *weakTargetMap) evict(wp weak.Pointer[TargetHandle]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, wp)
}
