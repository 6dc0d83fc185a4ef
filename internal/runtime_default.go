//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the Runtime owned by the calling goroutine, creating
// one on first use. Reactive state is therefore always created, tracked,
// and triggered against the Runtime of the goroutine that created it;
// using it from a different goroutine is caught by Tracker.ShouldTrack
// (tracking silently skipped) rather than ever corrupting graph state.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

func getGID() int64 {
	return goid.Get()
}
