// Package logging is the service logger: a small context-aware interface and
// a log/slog implementation that tags records with the chi request id and
// keeps credentials out of the output.
package logging

import "context"

// Logger takes key-value pairs after the message:
//
//	log.Info(ctx, "member created", "id", id, "sektor", sektor)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
