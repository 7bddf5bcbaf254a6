package graph

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sirupsen/logrus"
)

// TimeoutMonitor bounds query execution with a deadline and logs slow or failed queries
type TimeoutMonitor struct {
	logger       logrus.FieldLogger
	warningRatio float64 // Warn when execution reaches this % of timeout
}

// NewTimeoutMonitor creates a monitor. A ratio outside (0,1] falls back to 0.8.
func NewTimeoutMonitor(logger logrus.FieldLogger, warningRatio float64) *TimeoutMonitor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if warningRatio <= 0 || warningRatio > 1 {
		warningRatio = 0.8
	}
	return &TimeoutMonitor{
		logger:       logger.WithField("component", "timeout_monitor"),
		warningRatio: warningRatio,
	}
}

// MonitorWithContext runs fn under a context that expires after timeout.
// A non-positive timeout leaves the parent context untouched.
func (tm *TimeoutMonitor) MonitorWithContext(
	ctx context.Context,
	operation string,
	timeout time.Duration,
	fn func(context.Context) error,
) error {
	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(execCtx)
	duration := time.Since(start)

	fields := logrus.Fields{
		"operation":        operation,
		"duration_seconds": duration.Seconds(),
		"timeout_seconds":  timeout.Seconds(),
	}

	if err != nil {
		if stderrors.Is(execCtx.Err(), context.DeadlineExceeded) {
			tm.logger.WithFields(fields).Error("query timed out")
			// The driver may surface a generic error after the deadline fires
			if !stderrors.Is(err, context.DeadlineExceeded) {
				return &deadlineError{cause: err}
			}
		} else {
			tm.logger.WithFields(fields).WithError(err).Warn("query failed")
		}
		return err
	}

	if timeout > 0 && duration >= time.Duration(float64(timeout)*tm.warningRatio) {
		fields["percent_used"] = (duration.Seconds() / timeout.Seconds()) * 100
		tm.logger.WithFields(fields).Warn("query approaching timeout")
	} else {
		tm.logger.WithFields(fields).Debug("query completed")
	}

	return nil
}

// deadlineError keeps the driver's error text while matching context.DeadlineExceeded
type deadlineError struct {
	cause error
}

func (e *deadlineError) Error() string { return e.cause.Error() }

func (e *deadlineError) Unwrap() []error { return []error{e.cause, context.DeadlineExceeded} }
