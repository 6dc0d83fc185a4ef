package internal

import (
	"sort"
	"sync"
	"time"

	"github.com/corewave/reactive/metrics"
)

// RecursionLimit bounds how many times, within one drain, the same
// pre/main/post entry may run before the scheduler gives up on it and
// emits a diagnostic.
const RecursionLimit = 100

// Scheduler is the three-phase (pre/main/post) batched job queue that
// coalesces every reactive write within a tick into a single ordered
// drain. All of its state is scoped to one Runtime.
//
// QueueJob/QueuePreFlushCb/QueuePostFlushCb arm a pending drain but never
// run it themselves: the drain (flushJobs) only executes
// when something calls Wait on the Future queueFlush hands back (directly,
// or via NextTick), on that caller's own goroutine (see microtask.go). mu
// guards every read or write of the slices and flags below; it is never
// held while running a job or callback, since a job is allowed to
// synchronously re-enter QueueJob (a self-recursing watcher) and a
// non-reentrant mutex would deadlock on that path.
type Scheduler struct {
	rt *Runtime

	mu sync.Mutex

	microtasks *microtaskQueue

	queue      []Job
	flushIndex int

	pendingPre  []Callback
	pendingPost []Callback

	activePost      []Callback
	activePostIndex int

	currentPreFlushParentJob Job

	isFlushing     bool
	isFlushPending bool

	currentFlushPromise *Future

	preRecursion  map[any]int
	mainRecursion map[any]int
	postRecursion map[any]int
}

// NewScheduler returns an idle scheduler (flushIndex == -1).
func NewScheduler(rt *Runtime) *Scheduler {
	return &Scheduler{
		rt:         rt,
		microtasks: newMicrotaskQueue(),
		flushIndex: -1,
	}
}

// QueueJob inserts job into the main queue at its sorted position, unless
// it is already present within the applicable dedup window, then arms a
// drain. A job matching the pre-flush phase's own parent job is rejected
// outright, to avoid a pre-callback re-triggering the update it ran from.
func (s *Scheduler) QueueJob(job Job) {
	s.mu.Lock()

	if s.currentPreFlushParentJob != nil && jobSameKey(job, s.currentPreFlushParentJob) {
		s.mu.Unlock()
		return
	}

	dedupStart := s.flushIndex
	if s.isFlushing && job.AllowRecurse() {
		dedupStart = s.flushIndex + 1
	}
	if dedupStart < 0 {
		dedupStart = 0
	}

	if !s.containsFromLocked(job, dedupStart) {
		insertStart := 0
		if s.isFlushing {
			insertStart = s.flushIndex + 1
		}
		idx := s.findInsertionIndexLocked(job.ID(), insertStart)
		s.queue = append(s.queue, nil)
		copy(s.queue[idx+1:], s.queue[idx:])
		s.queue[idx] = job
	}

	depth := len(s.queue)
	s.mu.Unlock()

	metrics.GetGlobalCollector().RecordQueueDepth(depth)
	s.queueFlush()
}

func (s *Scheduler) containsFromLocked(job Job, start int) bool {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(s.queue); i++ {
		if s.queue[i] != nil && jobSameKey(s.queue[i], job) {
			return true
		}
	}
	return false
}

// findInsertionIndexLocked binary-searches queue[start:] for the position
// that keeps the queue sorted non-decreasing by id, placing a new job after
// any already-queued jobs with the same id. NoID compares as the largest ID value, so
// it always lands at (or is pushed to) the end without special-casing.
func (s *Scheduler) findInsertionIndexLocked(id ID, start int) int {
	end := len(s.queue)
	for start < end {
		mid := int(uint(start+end) >> 1)
		if s.queue[mid].ID() <= id {
			start = mid + 1
		} else {
			end = mid
		}
	}
	return start
}

func jobSameKey(a, b Job) bool {
	return a.Key() == b.Key()
}

// InvalidateJob removes job from the main queue if it sits strictly after
// the index currently executing; a job at or before flushIndex has already
// been committed to and is left alone. Only the first matching entry is
// examined: the dedup window QueueJob applies during a flush can legally
// leave more than one copy of an allow_recurse job's key queued at once,
// and if the first copy sits at or before flushIndex, later copies stay
// queued.
func (s *Scheduler) InvalidateJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, q := range s.queue {
		if q != nil && jobSameKey(q, job) {
			if i > s.flushIndex {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
			}
			return
		}
	}
}

// QueuePreFlushCb appends cb to the pre-phase backlog, deduped by Key, then
// arms a drain.
func (s *Scheduler) QueuePreFlushCb(cb Callback) {
	s.mu.Lock()
	if !containsKey(s.pendingPre, cb.Key) {
		s.pendingPre = append(s.pendingPre, cb)
	}
	s.mu.Unlock()

	s.queueFlush()
}

// QueuePostFlushCb appends to the post-phase backlog. A single callback is
// deduped by Key against the current backlog; passing more than one
// callback (a pre-deduped batch, e.g. component unmount hooks) bypasses
// the dedup check entirely,
func (s *Scheduler) QueuePostFlushCb(cbs ...Callback) {
	s.mu.Lock()
	if len(cbs) != 1 {
		s.pendingPost = append(s.pendingPost, cbs...)
	} else if !containsKey(s.pendingPost, cbs[0].Key) {
		s.pendingPost = append(s.pendingPost, cbs[0])
	}
	s.mu.Unlock()

	s.queueFlush()
}

func containsKey(cbs []Callback, key any) bool {
	for _, cb := range cbs {
		if cb.Key == key {
			return true
		}
	}
	return false
}

// queueFlush arms exactly one pending microtask to drain everything queued
// before it fires.
func (s *Scheduler) queueFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isFlushing || s.isFlushPending {
		return
	}
	s.isFlushPending = true
	s.currentFlushPromise = s.microtasks.Schedule(s.flushJobs)
}

// FlushPreFlushCbs drains pending_pre to a fixed point: pre-callbacks may
// enqueue more pre-callbacks. parentJob, if non-nil, is the main-queue job
// whose own update explicitly triggered this pre-drain; it is exposed via
// currentPreFlushParentJob for the duration so QueueJob can reject an
// immediately re-queued no-op for that same job.
func (s *Scheduler) FlushPreFlushCbs(parentJob Job) {
	s.mu.Lock()
	prev := s.currentPreFlushParentJob
	s.currentPreFlushParentJob = parentJob
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.currentPreFlushParentJob = prev
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.pendingPre) == 0 {
			s.mu.Unlock()
			return
		}
		snapshot := s.pendingPre
		s.pendingPre = nil
		s.mu.Unlock()

		for _, cb := range snapshot {
			if s.rt.DevMode && s.checkRecursionLimit(s.preRecursion, "pre", cb.Key, parentJob) {
				continue
			}
			cb.Fn()
		}
	}
}

// FlushPostFlushCbs drains pending_post once. If a post-flush is already
// active (a post callback scheduled more post work while this function was
// itself iterating), the new backlog is appended to the in-flight snapshot
// in place rather than starting a second independent pass.
func (s *Scheduler) FlushPostFlushCbs() {
	s.mu.Lock()
	if len(s.pendingPost) == 0 {
		s.mu.Unlock()
		return
	}

	snapshot := s.pendingPost
	s.pendingPost = nil

	if s.activePost != nil {
		s.activePost = append(s.activePost, snapshot...)
		s.mu.Unlock()
		return
	}

	s.activePost = snapshot
	sort.SliceStable(s.activePost, func(i, j int) bool { return s.activePost[i].ID < s.activePost[j].ID })
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.activePostIndex >= len(s.activePost) {
			s.activePost = nil
			s.activePostIndex = 0
			s.mu.Unlock()
			return
		}
		cb := s.activePost[s.activePostIndex]
		s.activePostIndex++
		s.mu.Unlock()

		if s.rt.DevMode && s.checkRecursionLimit(s.postRecursion, "post", cb.Key, nil) {
			continue
		}
		cb.Fn()
	}
}

// flushJobs is the drain algorithm: pre-phase, sort, main
// phase under per-job error isolation, then (in a finalizer) clear and
// post-phase, recursing to a fixed point if anything was re-enqueued.
func (s *Scheduler) flushJobs() {
	start := time.Now()
	jobsRun := 0

	s.mu.Lock()
	s.isFlushPending = false
	s.isFlushing = true
	if s.rt.DevMode {
		s.preRecursion = map[any]int{}
		s.mainRecursion = map[any]int{}
		s.postRecursion = map[any]int{}
	}
	s.mu.Unlock()

	defer func() {
		metrics.GetGlobalCollector().RecordDrain(jobsRun, time.Since(start))
		s.finishFlush()
	}()

	s.FlushPreFlushCbs(nil)

	s.mu.Lock()
	sort.SliceStable(s.queue, func(i, j int) bool { return s.queue[i].ID() < s.queue[j].ID() })
	s.mu.Unlock()

	for {
		s.mu.Lock()
		s.flushIndex++
		if s.flushIndex >= len(s.queue) {
			s.mu.Unlock()
			return
		}
		job := s.queue[s.flushIndex]
		s.mu.Unlock()

		if job == nil || !job.Active() {
			continue
		}

		if s.rt.DevMode && s.checkRecursionLimit(s.mainRecursion, "main", job.Key(), job) {
			continue
		}

		jobsRun++
		s.rt.CallWithErrorHandling(func() {
			_ = job.Run()
		}, ErrScheduler, job.Owner())
	}
}

func (s *Scheduler) finishFlush() {
	s.mu.Lock()
	s.flushIndex = -1
	s.queue = nil
	s.mu.Unlock()

	s.FlushPostFlushCbs()

	s.mu.Lock()
	s.isFlushing = false
	s.currentFlushPromise = nil
	shouldRecurse := len(s.queue) > 0 || len(s.pendingPre) > 0 || len(s.pendingPost) > 0
	s.mu.Unlock()

	if shouldRecurse {
		s.flushJobs()
	}
}

// checkRecursionLimit increments counts[key] and reports whether it has
// exceeded RecursionLimit, warning on every call that finds it over the
// limit. Separate
// counter maps for the pre/main/post phases mean a callback that keeps
// re-triggering itself across phases is not caught by a shared counter;
// preserved deliberately, not a bug.
func (s *Scheduler) checkRecursionLimit(counts map[any]int, phase string, key any, job Job) bool {
	if counts == nil {
		return false
	}

	s.mu.Lock()
	counts[key]++
	n := counts[key]
	s.mu.Unlock()

	if n <= RecursionLimit {
		return false
	}

	owner := ""
	debugID := ""
	if job != nil {
		owner = job.Owner()
		debugID = job.DebugID()
	}
	metrics.GetGlobalCollector().RecordRecursionLimitHit(phase, owner)

	if debugID != "" {
		s.rt.warnf(owner, "possible infinite update loop detected in a reactive job (id=%s)", debugID)
	} else {
		s.rt.warnf(owner, "possible infinite update loop detected in a reactive job")
	}
	return true
}

// NextTick returns a future that resolves after the next (or current)
// drain completes, optionally chaining fn onto it.
func (s *Scheduler) NextTick(fn func()) *Future {
	s.mu.Lock()
	p := s.currentFlushPromise
	s.mu.Unlock()

	if p == nil {
		p = resolvedFuture()
	}
	if fn == nil {
		return p
	}

	return s.microtasks.Schedule(func() {
		p.Wait()
		fn()
	})
}
