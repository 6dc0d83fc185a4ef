// Package errors collects panics recovered from reactive jobs, effects, and
// watcher callbacks and routes them to a pluggable Reporter: a
// zero-overhead default (no reporter configured means errors are silently
// dropped) backed by a mutex-guarded global registry.
package errors

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/corewave/reactive/internal"
)

// Code identifies where inside the core a recovered panic originated.
type Code = internal.ErrorCode

const (
	CodeScheduler           = internal.ErrScheduler
	CodeSchedulerFlush      = internal.ErrSchedulerFlush
	CodeTrack               = internal.ErrTrack
	CodeTrigger             = internal.ErrTrigger
	CodeWatchCallback       = internal.ErrWatchCallback
	CodeWatchGetter         = internal.ErrWatchGetter
	CodeWatchCleanup        = internal.ErrWatchCleanup
	CodeNativeEventHandler  = internal.ErrNativeEventHandler
)

// Context carries diagnostic metadata about where and when an error
// occurred.
type Context struct {
	Owner     string
	Code      Code
	Timestamp time.Time
	Tags      map[string]string
	Extra     map[string]any
}

// Reporter is a pluggable interface for error tracking backends. Pass nil
// to SetReporter to disable reporting (the default): errors are dropped
// with zero overhead beyond a nil check.
type Reporter interface {
	// ReportPanic reports a panic recovered from a reactive job, effect,
	// or watcher callback.
	ReportPanic(recovered any, ctx Context)

	// Flush blocks until all pending reports have been sent, or timeout
	// elapses.
	Flush(timeout time.Duration) error
}

var (
	mu       sync.RWMutex
	reporter Reporter
)

// SetReporter installs the global error reporter. Pass nil to disable
// reporting.
func SetReporter(r Reporter) {
	mu.Lock()
	defer mu.Unlock()
	reporter = r
}

// GetReporter returns the currently configured reporter, or nil.
func GetReporter() Reporter {
	mu.RLock()
	defer mu.RUnlock()
	return reporter
}

// Wire installs the package-level reporter as rt's ErrorHandler
// collaborator (internal.ErrorHandler), so CallWithErrorHandling routes
// through it. Call once per Runtime, typically from reactive.init.
func Wire(rt *internal.Runtime) {
	rt.SetErrorHandler(handlerFunc(func(recovered any, code Code, owner string) {
		mu.RLock()
		r := reporter
		mu.RUnlock()
		if r == nil {
			return
		}
		r.ReportPanic(recovered, Context{Owner: owner, Code: code, Timestamp: time.Now()})
	}))
}

type handlerFunc func(recovered any, code Code, owner string)

func (f handlerFunc) Handle(recovered any, code Code, owner string) { f(recovered, code, owner) }

// ConsoleReporter writes errors to stderr via fmt.Fprintf, suited to
// development. It never returns a non-nil error from Flush: there is
// nothing to flush.
type ConsoleReporter struct {
	Verbose bool
}

// NewConsoleReporter returns a ConsoleReporter; verbose additionally logs
// Extra/Tags.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{Verbose: verbose}
}

func (c *ConsoleReporter) ReportPanic(recovered any, ctx Context) {
	fmt.Fprintf(os.Stderr, "[reactive] %s panic (owner=%q): %v\n", ctx.Code, ctx.Owner, recovered)
	if c.Verbose && len(ctx.Extra) > 0 {
		fmt.Fprintf(os.Stderr, "[reactive]   extra: %+v\n", ctx.Extra)
	}
	if c.Verbose && len(ctx.Tags) > 0 {
		fmt.Fprintf(os.Stderr, "[reactive]   tags: %+v\n", ctx.Tags)
	}
}

func (c *ConsoleReporter) Flush(timeout time.Duration) error { return nil }
