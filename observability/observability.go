// Package observability provides pluggable error reporting for the Loom
// runtime: a console logger for development, a Sentry backend for
// production, and a breadcrumb trail for context leading up to a report.
//
// This package re-exports github.com/loomtui/loom/internal/observability
// under a shorter, stable import path for applications embedding Loom.
//
// # Error Reporting
//
//   - ConsoleReporter: logs errors to stderr (development)
//   - SentryReporter: sends errors to Sentry (production)
//   - custom implementations: implement ErrorReporter for other services
//
// # Example
//
//	import "github.com/loomtui/loom/observability"
//
//	reporter := observability.NewConsoleReporter(true)
//	observability.SetErrorReporter(reporter)
package observability

import (
	"github.com/getsentry/sentry-go"

	"github.com/loomtui/loom/internal/observability"
)

const MaxBreadcrumbs = observability.MaxBreadcrumbs

type ErrorKind = observability.ErrorKind

const (
	KindUnknown   = observability.KindUnknown
	KindParse     = observability.KindParse
	KindCompile   = observability.KindCompile
	KindBackendIO = observability.KindBackendIO
)

type ErrorReporter = observability.ErrorReporter

var GetErrorReporter = observability.GetErrorReporter
var SetErrorReporter = observability.SetErrorReporter

type ErrorContext = observability.ErrorContext

type ConsoleReporter = observability.ConsoleReporter

var NewConsoleReporter = observability.NewConsoleReporter

type SentryReporter = observability.SentryReporter

func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	return observability.NewSentryReporter(dsn, opts...)
}

type SentryOption = observability.SentryOption

var WithEnvironment = observability.WithEnvironment
var WithRelease = observability.WithRelease
var WithDebug = observability.WithDebug

func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) SentryOption {
	return observability.WithBeforeSend(fn)
}

type Breadcrumb = observability.Breadcrumb

var RecordBreadcrumb = observability.RecordBreadcrumb
var GetBreadcrumbs = observability.GetBreadcrumbs
var ClearBreadcrumbs = observability.ClearBreadcrumbs
