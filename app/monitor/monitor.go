package monitor

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/peekpost/peekpost/app/cfg"
)

var enabled bool

// Init configures the error-reporting sink. An empty SENTRY_DSN disables
// reporting; Notify becomes a no-op.
func Init() error {
	c := cfg.Get()

	if c.SentryDSN == "" {
		slog.Info("Error reporting disabled (SENTRY_DSN not set)")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     c.SentryDSN,
		Release: c.Version,
	})
	if err != nil {
		return err
	}

	enabled = true
	slog.Info("Error reporting enabled")
	return nil
}

// Notify forwards err to the monitoring sink with the originating request
// URL as context. Sink failures must never affect request handling, so
// this logs and returns nothing.
func Notify(err error, requestURL string) {
	if err == nil {
		return
	}

	slog.Error("Request failed", "url", requestURL, "error", err)

	if !enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if requestURL != "" {
			scope.SetTag("request_url", requestURL)
		}
		sentry.CaptureException(err)
	})
}

// Flush drains buffered events on shutdown.
func Flush() {
	if !enabled {
		return
	}
	sentry.Flush(2 * time.Second)
}
