package internal

// depLink is one edge in the bipartite dependency graph between a Dep (a
// (target, key) coordinate) and an Effect subscribed to it. Effects hold
// the head of their depsHead list, Deps hold the head of their subsHead
// list; both are circular-tailed singly-forward / doubly-linked lists so
// that insertion, membership tests against the most recent entry, and
// removal are all O(1) without scanning. Grounded on the prior implementation's
// DependencyLink in internal/node.go.
type depLink struct {
	dep *Dep
	sub *Effect

	prevDep *depLink
	nextDep *depLink

	prevSub *depLink
	nextSub *depLink
}

// Dep is the set of effects subscribed to a single (target, key)
// coordinate. Invariant: effect ∈ dep ⇔ dep ∈ effect.deps.
type Dep struct {
	subsHead *depLink
}

// NewDep creates an empty dependency set.
func NewDep() *Dep {
	return &Dep{}
}

// Link subscribes sub to dep, unless sub's most-recently-added dependency
// already is dep (the common case when an effect re-reads the same
// property twice in one run).
func (dep *Dep) Link(sub *Effect) {
	if sub.depsHead != nil {
		tail := sub.depsHead.prevDep
		if tail.dep == dep {
			return
		}
	}

	link := &depLink{dep: dep, sub: sub}

	sub.addDepLink(link)
	dep.addSubLink(link)
}

// Has reports whether sub is currently subscribed to dep.
func (dep *Dep) Has(sub *Effect) bool {
	for link := dep.subsHead; link != nil; link = link.nextSub {
		if link.sub == sub {
			return true
		}
	}
	return false
}

// Effects iterates the effects subscribed to dep, in subscription order.
// The caller may mutate dep (e.g. by stopping an effect) while iterating;
// a fresh snapshot slice is returned precisely so that trigger can collect
// "to_run" before invoking anything that might re-enter the graph.
func (dep *Dep) Effects() []*Effect {
	var out []*Effect
	for link := dep.subsHead; link != nil; link = link.nextSub {
		out = append(out, link.sub)
	}
	return out
}

func (dep *Dep) addSubLink(link *depLink) {
	if dep.subsHead == nil {
		dep.subsHead = link
		link.prevSub = link
		link.nextSub = nil
		return
	}

	tail := dep.subsHead.prevSub
	tail.nextSub = link
	link.prevSub = tail
	link.nextSub = nil
	dep.subsHead.prevSub = link
}

func (dep *Dep) removeSubLink(link *depLink) {
	if link.prevSub == link {
		dep.subsHead = nil
		link.prevSub = nil
		link.nextSub = nil
		return
	}

	if link == dep.subsHead {
		dep.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	} else {
		dep.subsHead.prevSub = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
}

func (sub *Effect) addDepLink(link *depLink) {
	if sub.depsHead == nil {
		sub.depsHead = link
		link.prevDep = link
		link.nextDep = nil
		return
	}

	tail := sub.depsHead.prevDep
	tail.nextDep = link
	link.prevDep = tail
	link.nextDep = nil
	sub.depsHead.prevDep = link
}

// ClearDeps removes sub from every Dep it is currently a member of. Used by
// cleanup() before each re-run so that stale conditional reads stop firing.
func (sub *Effect) ClearDeps() {
	for link := sub.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}
	sub.depsHead = nil
}
