package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the process-wide logger. Init also installs it as slog's default.
var Log *slog.Logger

// Init writes text at debug level in development and JSON at info level
// otherwise. With a DSN, error records are also reported to Sentry.
func Init(isDev bool, sentryDSN string) {
	handlers := []slog.Handler{stdoutHandler(isDev)}

	if sentryDSN != "" {
		h, err := sentryHandler(sentryDSN, isDev)
		if err != nil {
			slog.Warn("sentry disabled", "error", err)
		} else {
			handlers = append(handlers, h)
		}
	}

	Log = slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(Log)
}

func stdoutHandler(isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func sentryHandler(dsn string, isDev bool) (slog.Handler, error) {
	environment := "production"
	if isDev {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return nil, err
	}

	// Failed sweeps and 5xx requests are logged at error level
	return slogsentry.Option{
		Level:     slog.LevelError,
		AddSource: true,
	}.NewSentryHandler(), nil
}

// Flush waits for buffered Sentry events. No-op when Sentry is disabled.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
