package internal

import "github.com/corewave/reactive/metrics"

// ErrorCode tags where inside the core a recovered panic originated, so the
// configured ErrorHandler collaborator can route or label it.
type ErrorCode int

const (
	ErrScheduler ErrorCode = iota
	ErrSchedulerFlush
	ErrTrack
	ErrTrigger
	ErrWatchCallback
	ErrWatchGetter
	ErrWatchCleanup
	ErrNativeEventHandler
)

func (c ErrorCode) String() string {
	switch c {
	case ErrScheduler:
		return "SCHEDULER"
	case ErrSchedulerFlush:
		return "SCHEDULER_FLUSH"
	case ErrTrack:
		return "TRACK"
	case ErrTrigger:
		return "TRIGGER"
	case ErrWatchCallback:
		return "WATCH_CALLBACK"
	case ErrWatchGetter:
		return "WATCH_GETTER"
	case ErrWatchCleanup:
		return "WATCH_CLEANUP"
	case ErrNativeEventHandler:
		return "NATIVE_EVENT_HANDLER"
	default:
		return "UNKNOWN"
	}
}

// ErrorHandler routes a recovered panic to wherever it should be reported.
// Concrete implementations (console, Sentry, ...) live in the top-level
// errors package; internal only depends on this interface so that package
// never needs to import back into internal.
type ErrorHandler interface {
	Handle(recovered any, code ErrorCode, owner string)
}

// SetErrorHandler installs the collaborator used by CallWithErrorHandling.
// Passing nil restores the zero-overhead default: recovered panics are
// swallowed rather than reported, so an unconfigured handler means
// "silently ignored", not "crash".
func (rt *Runtime) SetErrorHandler(h ErrorHandler) { rt.errorHandler = h }

// CallWithErrorHandling runs fn, recovering any panic and routing it to
// the configured ErrorHandler tagged with code and owner.
func (rt *Runtime) CallWithErrorHandling(fn func(), code ErrorCode, owner string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.GetGlobalCollector().RecordJobError(owner)
			if rt.errorHandler != nil {
				rt.errorHandler.Handle(r, code, owner)
			}
		}
	}()
	fn()
}
