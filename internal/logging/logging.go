package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/masq"
)

type ctxKey struct{}

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(New(os.Stdout, "info", time.UTC))
}

// New builds a JSON logger. Values tagged `masq:"secret"` and attributes that
// look like credentials are redacted before they are written.
func New(w io.Writer, level string, loc *time.Location) *slog.Logger {
	redact := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("AccessToken"),
		masq.WithFieldName("APIKey"),
	)
	if loc == nil {
		loc = time.UTC
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return redact(groups, a)
		},
	})
	return slog.New(h)
}

// SetDefault replaces the process logger.
func SetDefault(l *slog.Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(l)
	slog.SetDefault(l)
}

// Default returns the process logger.
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// With stores logger in ctx.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
