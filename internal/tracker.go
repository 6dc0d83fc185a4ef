package internal

import "sync"

// Tracker owns the active-effect stack and the tracking-enabled flag stack
// for one Runtime. A Runtime is obtained per-goroutine (see
// runtime_default.go), but effects can still be read from or written to by
// a second goroutine holding a reference to the same Ref/Reactive handle,
// so ShouldTrack additionally verifies the read is happening on the
// goroutine that is actually running the active effect.
type Tracker struct {
	mu sync.RWMutex

	tracking     bool
	trackStack   []bool
	effectStack  []*Effect
	activeEffect *Effect

	executingGID int64
}

// NewTracker returns a Tracker with tracking enabled by default.
func NewTracker() *Tracker {
	return &Tracker{tracking: true}
}

// ActiveEffect returns the effect currently executing, or nil.
func (t *Tracker) ActiveEffect() *Effect {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeEffect
}

// IsTracking reports whether reads should currently be recorded.
func (t *Tracker) IsTracking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tracking
}

// PauseTracking pushes the current tracking state and disables tracking.
func (t *Tracker) PauseTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trackStack = append(t.trackStack, t.tracking)
	t.tracking = false
}

// EnableTracking pushes the current tracking state and enables tracking.
func (t *Tracker) EnableTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trackStack = append(t.trackStack, t.tracking)
	t.tracking = true
}

// ResetTracking pops the tracking stack, restoring the previous state. A
// pop against an empty stack restores the default (tracking enabled),
// mirroring a bare resetTracking() called without a matching push.
func (t *Tracker) ResetTracking() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.trackStack) == 0 {
		t.tracking = true
		return
	}
	last := len(t.trackStack) - 1
	t.tracking = t.trackStack[last]
	t.trackStack = t.trackStack[:last]
}

// RunUntracked runs fn with tracking disabled for its duration, regardless
// of the current state, restoring it afterwards.
func (t *Tracker) RunUntracked(fn func()) {
	t.PauseTracking()
	defer t.ResetTracking()
	fn()
}

// pushEffect makes e the active effect, recording the goroutine it runs on.
func (t *Tracker) pushEffect(e *Effect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.effectStack = append(t.effectStack, e)
	t.activeEffect = e
	t.executingGID = getGID()
}

// popEffect restores the previous active effect.
func (t *Tracker) popEffect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.effectStack)
	if n == 0 {
		t.activeEffect = nil
		return
	}
	t.effectStack = t.effectStack[:n-1]
	if n-1 == 0 {
		t.activeEffect = nil
		t.executingGID = 0
		return
	}
	t.activeEffect = t.effectStack[n-2]
	t.executingGID = getGID()
}

// onStack reports whether e is currently anywhere on the effect stack; used
// by Effect.Run's re-entrancy guard.
func (t *Tracker) onStack(e *Effect) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.effectStack {
		if s == e {
			return true
		}
	}
	return false
}

// ShouldTrack reports whether a read happening right now, on the calling
// goroutine, should be recorded as a dependency of the active effect.
func (t *Tracker) ShouldTrack() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeEffect != nil && t.tracking && getGID() == t.executingGID
}
