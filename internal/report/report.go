// Package report provides a pluggable sink for non-fatal errors.
// Long-lived components take a Reporter instead of writing to the log
// directly, so tests can capture failures and alternate frontends can
// surface them however they like.
package report

import (
	"context"
	"log/slog"

	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

// Reporter receives errors that were handled but worth recording.
type Reporter interface {
	Report(ctx context.Context, op errors.Op, err error)
}

// Nop discards all reports.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(context.Context, errors.Op, error) {}

// Log writes reports to the application log with the failing
// operation and error kind attached.
type Log struct {
	log *slog.Logger
}

// NewLog returns a Reporter backed by the application log.
func NewLog() *Log {
	return &Log{log: logger.ComponentLogger("Report")}
}

// Report implements Reporter.
func (l *Log) Report(ctx context.Context, op errors.Op, err error) {
	if err == nil {
		return
	}
	l.log.ErrorContext(ctx, "Operation failed",
		"op", string(op),
		"kind", errors.GetKind(err).String(),
		"error", err)
}

// Recorder collects reports in memory for test assertions.
type Recorder struct {
	Ops  []errors.Op
	Errs []error
}

// Report implements Reporter.
func (r *Recorder) Report(_ context.Context, op errors.Op, err error) {
	r.Ops = append(r.Ops, op)
	r.Errs = append(r.Errs, err)
}

// Count returns the number of reports received.
func (r *Recorder) Count() int {
	return len(r.Ops)
}
