package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func trackingEffect(rt *Runtime, fn func()) *Effect {
	return rt.NewEffect(fn, EffectOptions{})
}

func TestTrackTrigger(t *testing.T) {
	t.Run("idempotent for a fixed active effect", func(t *testing.T) {
		rt := NewRuntime()
		target := NewTargetHandle(KindPlain)

		var dep *Dep
		e := trackingEffect(rt, func() {
			rt.Track(target, TrackGet, "k")
			rt.Track(target, TrackGet, "k")
			dep = rt.graph.targets.get(target)["k"]
		})

		assert.Len(t, dep.Effects(), 1)
		assert.Equal(t, e, dep.Effects()[0])
	})

	t.Run("trigger with CLEAR fires every dep of the target", func(t *testing.T) {
		rt := NewRuntime()
		target := NewTargetHandle(KindMap)
		var log []string

		trackingEffect(rt, func() {
			rt.Track(target, TrackGet, "a")
			log = append(log, "a")
		})
		trackingEffect(rt, func() {
			rt.Track(target, TrackGet, "b")
			log = append(log, "b")
		})

		log = nil
		rt.Trigger(target, TriggerClear, nil, nil, nil, nil)

		assert.ElementsMatch(t, []string{"a", "b"}, log)
	})

	t.Run("array length write triggers indices at or past the new length", func(t *testing.T) {
		rt := NewRuntime()
		target := NewTargetHandle(KindSlice)
		var log []string

		trackingEffect(rt, func() { rt.Track(target, TrackGet, 0); log = append(log, "idx0") })
		trackingEffect(rt, func() { rt.Track(target, TrackGet, 2); log = append(log, "idx2") })
		trackingEffect(rt, func() { rt.Track(target, TrackGet, "length"); log = append(log, "length") })

		log = nil
		rt.Trigger(target, TriggerSet, "length", 1, 3, nil)

		assert.ElementsMatch(t, []string{"idx2", "length"}, log)
	})

	t.Run("map add triggers both iterate sentinels but not a bare add on a slice", func(t *testing.T) {
		rt := NewRuntime()
		mapTarget := NewTargetHandle(KindMap)
		var log []string

		trackingEffect(rt, func() { rt.Track(mapTarget, TrackIterate, rt.IterateKey()); log = append(log, "iterate") })
		trackingEffect(rt, func() { rt.Track(mapTarget, TrackIterate, rt.MapKeyIterateKey()); log = append(log, "mapkeys") })

		log = nil
		rt.Trigger(mapTarget, TriggerAdd, "newkey", 1, nil, nil)

		assert.ElementsMatch(t, []string{"iterate", "mapkeys"}, log)

		sliceTarget := NewTargetHandle(KindSlice)
		trackingEffect(rt, func() { rt.Track(sliceTarget, TrackIterate, rt.IterateKey()); log = append(log, "slice-iterate") })

		log = nil
		rt.Trigger(sliceTarget, TriggerAdd, 0, 1, nil, nil)

		assert.Empty(t, log)
	})

	t.Run("an effect does not re-trigger itself unless allow_recurse", func(t *testing.T) {
		rt := NewRuntime()
		target := NewTargetHandle(KindPlain)
		runs := 0

		var e *Effect
		e = rt.NewEffect(func() {
			runs++
			rt.Track(target, TrackGet, "k")
			if runs == 1 {
				rt.Trigger(target, TriggerSet, "k", 1, 0, nil)
			}
		}, EffectOptions{})

		assert.Equal(t, 1, runs)
		assert.True(t, e.Active())
	})
}

func TestEffectDepRecollection(t *testing.T) {
	t.Run("deps reflect exactly the reads from the latest run", func(t *testing.T) {
		rt := NewRuntime()
		target := NewTargetHandle(KindPlain)

		readB := false
		e := rt.NewEffect(func() {
			rt.Track(target, TrackGet, "a")
			if readB {
				rt.Track(target, TrackGet, "b")
			}
		}, EffectOptions{})

		depA := rt.graph.targets.get(target)["a"]
		depB := rt.graph.targets.get(target)["b"]
		assert.True(t, depA.Has(e))
		assert.Nil(t, depB)

		readB = true
		e.Run()

		depB = rt.graph.targets.get(target)["b"]
		assert.True(t, depA.Has(e))
		assert.True(t, depB.Has(e))
	})
}
