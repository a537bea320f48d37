// Logging setup and configuration
//
// Structured logging framework:
// - Log level management
// - Output formatting
// - Field standardization
// - Contextual logging

package telemetry

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// Log levels
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger defines the interface for logging
type Logger interface {
	// Log methods
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// With methods
	With(args ...interface{}) Logger
	WithField(key string, value interface{}) Logger

	// Context methods
	WithContext(ctx context.Context) Logger
}

// zerologLogger implements Logger on top of zerolog.Logger.
type zerologLogger struct {
	z zerolog.Logger
}

// requestIDKey is the context key ContextWithRequestID stores a request
// ID under.
type requestIDKey struct{}

// ContextWithRequestID returns a context carrying reqID for a later
// WithContext call to attach to every log line for that request.
func ContextWithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// NewLogger creates a new logger. format selects "json" (zerolog's native
// wire format) or "console" (zerolog's human-readable ConsoleWriter);
// output selects "stdout" or "stderr".
func NewLogger(level, format, output string) Logger {
	var w io.Writer = os.Stdout
	if strings.EqualFold(output, "stderr") {
		w = os.Stderr
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	z := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{z: z}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) Debug(msg string, args ...interface{}) {
	attachFields(l.z.Debug(), args).Msg(msg)
}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	attachFields(l.z.Info(), args).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, args ...interface{}) {
	attachFields(l.z.Warn(), args).Msg(msg)
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	attachFields(l.z.Error(), args).Msg(msg)
}

// attachFields folds args (alternating key, value) onto e.
func attachFields(e *zerolog.Event, args []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	return e
}

// With returns a Logger with args (alternating key, value) permanently
// attached to every subsequent log call.
func (l *zerologLogger) With(args ...interface{}) Logger {
	ctx := l.z.With()
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, args[i+1])
	}
	return &zerologLogger{z: ctx.Logger()}
}

// WithField adds a single field to the logger.
func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return l.With(key, value)
}

// WithContext attaches the request ID stored by ContextWithRequestID (if
// any) to every subsequent log call.
func (l *zerologLogger) WithContext(ctx context.Context) Logger {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok && reqID != "" {
		return l.With("request_id", reqID)
	}
	return l
}
