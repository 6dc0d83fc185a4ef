package internal

// TrackOp distinguishes the kinds of reads that can be tracked.
type TrackOp int

const (
	TrackGet TrackOp = iota
	TrackHas
	TrackIterate
)

// TriggerOp distinguishes the kinds of writes that can trigger.
type TriggerOp int

const (
	TriggerSet TriggerOp = iota
	TriggerAdd
	TriggerDelete
	TriggerClear
)

// TargetKind distinguishes the shapes of target that need special trigger
// rules.
type TargetKind int

const (
	KindPlain TargetKind = iota
	KindMap
	KindSlice
)

// TargetHandle is the identity of one observable object in the graph. Every
// Ref, Reactive map, or ReactiveSlice embeds exactly one TargetHandle and
// passes it (never the surrounding typed wrapper) to Track/Trigger; this
// keeps the graph itself free of generics while still letting each
// concrete reactive type carry its own T.
type TargetHandle struct {
	Kind TargetKind
}

// NewTargetHandle allocates a fresh target identity of the given kind.
func NewTargetHandle(kind TargetKind) *TargetHandle {
	return &TargetHandle{Kind: kind}
}

func (h *TargetHandle) isArrayLike() bool { return h.Kind == KindSlice }
func (h *TargetHandle) isMapLike() bool   { return h.Kind == KindMap }

// TrackEvent is passed to an effect's OnTrack hook.
type TrackEvent struct {
	Target *TargetHandle
	Op     TrackOp
	Key    any
}

// TriggerEvent is passed to an effect's OnTrigger hook.
type TriggerEvent struct {
	Target    *TargetHandle
	Op        TriggerOp
	Key       any
	NewValue  any
	OldValue  any
	OldTarget any
}

// iterateKeySentinel and mapKeyIterateSentinel back the two unique
// iteration tokens: registering a dependency on "the act of iterating this
// container" without binding to any concrete element key.
type iterateKeySentinel struct{}
type mapKeyIterateSentinel struct{}

// keyMap maps a single target's observable keys to their Dep.
type keyMap map[any]*Dep

// Graph maps target -> (key -> Dep). Targets are held weakly (weakmap.go):
// dropping every strong reference to a TargetHandle lets its key-map entry
// be evicted. A Dep that an effect still links from its own depsHead list
// stays reachable through that effect until it re-runs or stops, but the
// effect side of the link does not keep the target alive.
type Graph struct {
	targets *weakTargetMap

	IterateKey       any
	MapKeyIterateKey any
}

// NewGraph returns an empty dependency graph with its own iteration
// sentinels.
func NewGraph() *Graph {
	return &Graph{
		targets:          newWeakTargetMap(),
		IterateKey:       &iterateKeySentinel{},
		MapKeyIterateKey: &mapKeyIterateSentinel{},
	}
}

// Track records a read edge active_effect -> (target, key). No-op unless
// tracking is enabled and there is an active effect.
func (rt *Runtime) Track(target *TargetHandle, op TrackOp, key any) {
	if !rt.tracker.ShouldTrack() {
		return
	}

	active := rt.tracker.ActiveEffect()

	deps := rt.graph.targets.getOrCreate(target)
	dep, ok := deps[key]
	if !ok {
		dep = NewDep()
		deps[key] = dep
	}

	alreadyLinked := dep.Has(active)
	if !alreadyLinked {
		dep.Link(active)
	}

	if !alreadyLinked && active.onTrack != nil {
		active.onTrack(TrackEvent{Target: target, Op: op, Key: key})
	}
}

// Trigger fans a write on (target, key) out to every subscribed effect,
// invoking each effect's scheduler if it has one, or the effect itself
// otherwise.
func (rt *Runtime) Trigger(target *TargetHandle, op TriggerOp, key any, newVal, oldVal, oldTarget any) {
	deps := rt.graph.targets.get(target)
	if deps == nil {
		return
	}

	var depsToRun []*Dep

	switch {
	case op == TriggerClear:
		for _, dep := range deps {
			depsToRun = append(depsToRun, dep)
		}

	case op == TriggerSet && key == "length" && target.isArrayLike():
		newLen, isInt := asInt(newVal)
		for k, dep := range deps {
			if k == "length" {
				depsToRun = append(depsToRun, dep)
				continue
			}
			if idx, ok := asInt(k); ok && isInt && idx >= newLen {
				depsToRun = append(depsToRun, dep)
			}
		}

	default:
		if key != nil {
			if dep, ok := deps[key]; ok {
				depsToRun = append(depsToRun, dep)
			}
		}

		switch op {
		case TriggerAdd:
			if !target.isArrayLike() {
				if dep, ok := deps[rt.graph.IterateKey]; ok {
					depsToRun = append(depsToRun, dep)
				}
				if target.isMapLike() {
					if dep, ok := deps[rt.graph.MapKeyIterateKey]; ok {
						depsToRun = append(depsToRun, dep)
					}
				}
			} else if _, ok := asInt(key); ok {
				if dep, ok := deps["length"]; ok {
					depsToRun = append(depsToRun, dep)
				}
			}

		case TriggerDelete:
			if !target.isArrayLike() {
				if dep, ok := deps[rt.graph.IterateKey]; ok {
					depsToRun = append(depsToRun, dep)
				}
				if target.isMapLike() {
					if dep, ok := deps[rt.graph.MapKeyIterateKey]; ok {
						depsToRun = append(depsToRun, dep)
					}
				}
			}

		case TriggerSet:
			if target.isMapLike() {
				if dep, ok := deps[rt.graph.IterateKey]; ok {
					depsToRun = append(depsToRun, dep)
				}
			}
		}
	}

	active := rt.tracker.ActiveEffect()

	seen := make(map[*Effect]struct{})
	var toRun []*Effect
	for _, dep := range depsToRun {
		for _, e := range dep.Effects() {
			if e == active && !e.allowRecurse {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			toRun = append(toRun, e)
		}
	}

	evt := TriggerEvent{Target: target, Op: op, Key: key, NewValue: newVal, OldValue: oldVal, OldTarget: oldTarget}

	for _, e := range toRun {
		if e.onTrigger != nil {
			e.onTrigger(evt)
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
