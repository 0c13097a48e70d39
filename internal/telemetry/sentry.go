// Package telemetry reports terminal request failures to Sentry. The user
// attached to each event is the one-way digest, never the raw Telegram id.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

type SentryReporter struct {
	enabled bool
}

// Init initializes the Sentry SDK. An empty DSN leaves reporting disabled,
// which is valid for local runs.
func Init(dsn string) (*SentryReporter, error) {
	if dsn == "" {
		return &SentryReporter{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &SentryReporter{enabled: true}, nil
}

// CaptureError reports err scoped to the pseudonymized user.
func (r *SentryReporter) CaptureError(err error, hashedUserID string) {
	if !r.enabled {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: hashedUserID})
		sentry.CaptureException(err)
	})
}

// Close flushes buffered events before shutdown.
func (r *SentryReporter) Close() {
	if r.enabled {
		sentry.Flush(2 * time.Second)
	}
}
