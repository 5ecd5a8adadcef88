package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const redacted = "[redacted]"

// sensitiveKeys are attribute keys whose values never reach the output.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"password_hash": true,
	"token":         true,
	"api_token":     true,
	"authorization": true,
	"secret":        true,
}

type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps l. The request id and redaction are only applied by
// handlers built with NewHandler.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewHandler wraps h so each record carries the request id found in its
// context and sensitive attributes are masked.
func NewHandler(h slog.Handler) slog.Handler {
	return requestHandler{next: h}
}

// NewJSON is the production logger: JSON lines on w at the named level.
func NewJSON(w io.Writer, level string) *SlogLogger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: redact,
	})
	return NewSlogLogger(slog.New(NewHandler(h)))
}

func Discard() *SlogLogger {
	return NewSlogLogger(slog.New(slog.DiscardHandler))
}

// ParseLevel maps debug, info, warn(ing) and error; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func redact(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redacted)
	}
	return a
}

type requestHandler struct {
	next slog.Handler
}

func (h requestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := chimw.GetReqID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.next.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{next: h.next.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{next: h.next.WithGroup(name)}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
