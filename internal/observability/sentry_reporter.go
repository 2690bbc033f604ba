package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends reported errors to Sentry via its Hub API.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the underlying Sentry client at init time.
type SentryOption func(*sentry.ClientOptions)

func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.BeforeSend = fn }
}

func WithDebug(debug bool) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.Debug = debug }
}

func WithEnvironment(environment string) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.Environment = environment }
}

func WithRelease(release string) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.Release = release }
}

// NewSentryReporter initializes the Sentry SDK with dsn and opts. An empty
// dsn disables sending, which is useful in tests.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}

	if err := sentry.Init(clientOpts); err != nil {
		return nil, err
	}

	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) ReportError(err error, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", ctx.Kind.String())
		if ctx.Stage != "" {
			scope.SetTag("stage", ctx.Stage)
		}
		for key, value := range ctx.Tags {
			scope.SetTag(key, value)
		}
		for key, value := range ctx.Extra {
			scope.SetExtra(key, value)
		}
		for _, bc := range ctx.Breadcrumbs {
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Type:      bc.Type,
				Category:  bc.Category,
				Message:   bc.Message,
				Level:     sentry.Level(bc.Level),
				Timestamp: bc.Timestamp,
				Data:      bc.Data,
			}, MaxBreadcrumbs)
		}
		r.hub.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses. Sentry's
// own Flush returns bool; we always return nil for interface compatibility.
func (r *SentryReporter) Flush(timeout time.Duration) error {
	sentry.Flush(timeout)
	return nil
}
