package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeJob(id ID, allowRecurse bool, fn func() error) *FuncJob {
	return &FuncJob{
		JobID:           id,
		JobKey:          id,
		JobAllowRecurse: allowRecurse,
		Fn:              fn,
	}
}

func TestSchedulerOrdering(t *testing.T) {
	t.Run("parent before child regardless of queueing order", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		child := activeJob(2, false, func() error { log = append(log, "child"); return nil })
		parent := activeJob(1, false, func() error { log = append(log, "parent"); return nil })

		rt.scheduler.QueueJob(child)
		rt.scheduler.QueueJob(parent)
		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, []string{"parent", "child"}, log)
	})

	t.Run("batches synchronous writes into one drain", func(t *testing.T) {
		rt := NewRuntime()
		runs := 0

		job := activeJob(1, false, func() error { runs++; return nil })

		rt.scheduler.QueueJob(job)
		rt.scheduler.QueueJob(job)
		rt.scheduler.QueueJob(job)

		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, 1, runs)
	})

	t.Run("job with no id sorts after every numeric id", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		noID := &FuncJob{JobID: NoID, JobKey: "none", Fn: func() error { log = append(log, "none"); return nil }}
		numbered := activeJob(5, false, func() error { log = append(log, "5"); return nil })

		rt.scheduler.QueueJob(noID)
		rt.scheduler.QueueJob(numbered)
		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, []string{"5", "none"}, log)
	})
}

func TestSchedulerInvalidation(t *testing.T) {
	t.Run("invalidate mid-drain removes a job scheduled at a later index", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		later := activeJob(2, false, func() error { log = append(log, "later"); return nil })
		var earlier *FuncJob
		earlier = activeJob(1, false, func() error {
			log = append(log, "earlier")
			rt.scheduler.InvalidateJob(later)
			return nil
		})

		rt.scheduler.QueueJob(later)
		rt.scheduler.QueueJob(earlier)
		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, []string{"earlier"}, log)
	})

	t.Run("invalidating an already-run job is a silent no-op", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		first := activeJob(1, false, func() error { log = append(log, "first"); return nil })

		rt.scheduler.QueueJob(first)
		rt.scheduler.NextTick(nil).Wait()

		assert.NotPanics(t, func() { rt.scheduler.InvalidateJob(first) })
		assert.Equal(t, []string{"first"}, log)
	})
}

func TestSchedulerPostPhase(t *testing.T) {
	t.Run("post-in-post re-entry drains both within the same tick", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		rt.scheduler.QueuePostFlushCb(Callback{Key: "a", Fn: func() {
			log = append(log, "a")
			rt.scheduler.QueuePostFlushCb(Callback{Key: "b", Fn: func() {
				log = append(log, "b")
			}})
		}})

		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, []string{"a", "b"}, log)
	})
}

func TestSchedulerRecursionLimit(t *testing.T) {
	t.Run("an allow_recurse job re-queued from inside itself is bounded by RecursionLimit", func(t *testing.T) {
		rt := NewRuntime()
		rt.DevMode = true

		runs := 0
		var job *FuncJob
		job = activeJob(1, true, func() error {
			runs++
			rt.scheduler.QueueJob(job)
			return nil
		})

		rt.scheduler.QueueJob(job)
		rt.scheduler.NextTick(nil).Wait()

		assert.Equal(t, RecursionLimit, runs)
	})
}

func TestNextTick(t *testing.T) {
	t.Run("resolves immediately when idle", func(t *testing.T) {
		rt := NewRuntime()
		ran := false
		rt.scheduler.NextTick(func() { ran = true }).Wait()
		assert.True(t, ran)
	})

	t.Run("chained callback runs after the jobs enqueued before the call", func(t *testing.T) {
		rt := NewRuntime()
		var log []string

		rt.scheduler.QueueJob(activeJob(1, false, func() error {
			log = append(log, "job")
			return nil
		}))

		rt.scheduler.NextTick(func() { log = append(log, "tick") }).Wait()

		assert.Equal(t, []string{"job", "tick"}, log)
	})
}
