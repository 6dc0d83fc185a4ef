// Package component provides just enough of an "owning instance" to
// exercise the recursion warning's "format with a component name"
// requirement. It deliberately stops there: no lifecycle hooks, no
// provide/inject, no rendering — those are the virtual-DOM renderer's job,
// out of scope for the reactivity core.
package component

import "github.com/corewave/reactive/reactive"

// Instance names one owner for diagnostic purposes and tracks the effects
// created in its name so they can all be torn down together.
type Instance struct {
	Name string

	effects []*reactive.Effect
}

// New returns a named Instance.
func New(name string) *Instance {
	return &Instance{Name: name}
}

// Effect creates a reactive.Effect owned by inst: any recursion-limit
// warning it triggers is labeled with inst.Name.
func (inst *Instance) Effect(fn func(), opts ...reactive.Option) *reactive.Effect {
	e := reactive.NewEffect(fn, append(opts, reactive.WithOwner(inst.Name))...)
	inst.effects = append(inst.effects, e)
	return e
}

// WatchEffect creates a reactive.WatchEffect owned by inst.
func (inst *Instance) WatchEffect(fn func(onCleanup reactive.CleanupFunc), opts ...reactive.Option) *reactive.Effect {
	e := reactive.WatchEffect(fn, append(opts, reactive.WithOwner(inst.Name))...)
	inst.effects = append(inst.effects, e)
	return e
}

// Dispose stops every effect inst owns.
func (inst *Instance) Dispose() {
	for _, e := range inst.effects {
		e.Stop()
	}
	inst.effects = nil
}
