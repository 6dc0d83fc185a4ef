package errors

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter reports panics recovered from reactive jobs, effects, and
// watcher callbacks to Sentry, using one Hub per reporter. It carries no
// breadcrumbs or component-tree context: those belong to whatever renderer
// sits on top of this package, not to the reactive core itself.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the Sentry client used by NewSentryReporter.
type SentryOption func(*sentry.ClientOptions)

// WithEnvironment sets the environment tag for all events.
func WithEnvironment(env string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithRelease sets the release identifier for all events.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// NewSentryReporter initializes a dedicated Sentry client/hub for dsn.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}

	client, err := sentry.NewClient(clientOpts)
	if err != nil {
		return nil, err
	}

	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *SentryReporter) ReportPanic(recovered any, ctx Context) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("reactive.code", ctx.Code.String())
		if ctx.Owner != "" {
			scope.SetTag("reactive.owner", ctx.Owner)
		}
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		if len(ctx.Extra) > 0 {
			scope.SetContext("reactive", ctx.Extra)
		}

		if err, ok := recovered.(error); ok {
			s.hub.CaptureException(err)
			return
		}
		s.hub.CaptureMessage(ctx.Code.String() + ": panic in reactive job")
	})
}

func (s *SentryReporter) Flush(timeout time.Duration) error {
	s.hub.Flush(timeout)
	return nil
}
