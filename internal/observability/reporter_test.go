package observability

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReporter struct {
	errorCalls []mockErrorCall
	flushCalls int
	mu         sync.Mutex
}

type mockErrorCall struct {
	err error
	ctx *ErrorContext
}

func (m *mockReporter) ReportError(err error, ctx *ErrorContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCalls = append(m.errorCalls, mockErrorCall{err: err, ctx: ctx})
}

func (m *mockReporter) Flush(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCalls++
	return nil
}

func (m *mockReporter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errorCalls)
}

func TestSetAndGetErrorReporterRoundTrip(t *testing.T) {
	reporter := &mockReporter{}
	SetErrorReporter(reporter)
	defer SetErrorReporter(nil)

	assert.Same(t, reporter, GetErrorReporter())
}

func TestGetErrorReporterDefaultsToNil(t *testing.T) {
	SetErrorReporter(nil)
	assert.Nil(t, GetErrorReporter())
}

func TestReportErrorDeliversToConfiguredReporter(t *testing.T) {
	reporter := &mockReporter{}
	SetErrorReporter(reporter)
	defer SetErrorReporter(nil)

	err := errors.New("backend write failed")
	GetErrorReporter().ReportError(err, &ErrorContext{Kind: KindBackendIO, Stage: "backend.Render", Timestamp: time.Now()})

	require.Equal(t, 1, reporter.callCount())
	assert.Equal(t, err, reporter.errorCalls[0].err)
	assert.Equal(t, KindBackendIO, reporter.errorCalls[0].ctx.Kind)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "compile", KindCompile.String())
	assert.Equal(t, "backend-io", KindBackendIO.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
