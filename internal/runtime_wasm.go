//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

// GetRuntime returns the single process-wide Runtime. js/wasm has no real
// OS threads, so there is exactly one logical thread and no need to key
// runtimes by goroutine id.
func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

// getGID is a constant on wasm: single logical thread, no goroutine-id
// pinning required.
func getGID() int64 {
	return 0
}
