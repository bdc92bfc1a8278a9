// Package logging provides the structured logger shared by folio's
// document-processing packages. It wraps log/slog so callers attach
// key/value fields and a component name without caring about the handler
// in use; libraries default to the no-op logger and only emit when the
// embedding tool installs a real one.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Level represents the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is the structured logging interface folio packages accept.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, err error, msg string, fields ...any)
	Error(ctx context.Context, err error, msg string, fields ...any)

	With(fields ...any) Logger
	WithComponent(component string) Logger
}

// Config holds logger configuration.
type Config struct {
	Level     Level
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig returns the configuration used when callers pass nil.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// FolioLogger implements Logger on top of a slog handler.
type FolioLogger struct {
	logger    *slog.Logger
	level     Level
	component string
	fields    map[string]any
}

// New creates a structured logger from config; nil means DefaultConfig.
func New(config *Config) *FolioLogger {
	if config == nil {
		config = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &FolioLogger{
		logger:    slog.New(handler),
		level:     config.Level,
		component: config.Component,
		fields:    make(map[string]any),
	}
}

// Debug logs a debug message.
func (l *FolioLogger) Debug(ctx context.Context, msg string, fields ...any) {
	if l.level > LevelDebug {
		return
	}
	l.log(ctx, slog.LevelDebug, nil, msg, fields...)
}

// Info logs an info message.
func (l *FolioLogger) Info(ctx context.Context, msg string, fields ...any) {
	if l.level > LevelInfo {
		return
	}
	l.log(ctx, slog.LevelInfo, nil, msg, fields...)
}

// Warn logs a warning with an optional causing error.
func (l *FolioLogger) Warn(ctx context.Context, err error, msg string, fields ...any) {
	if l.level > LevelWarn {
		return
	}
	l.log(ctx, slog.LevelWarn, err, msg, fields...)
}

// Error logs an error message.
func (l *FolioLogger) Error(ctx context.Context, err error, msg string, fields ...any) {
	l.log(ctx, slog.LevelError, err, msg, fields...)
}

// With returns a logger carrying additional persistent fields.
func (l *FolioLogger) With(fields ...any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields)/2)
	for k, v := range l.fields {
		merged[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			merged[key] = fields[i+1]
		}
	}

	return &FolioLogger{
		logger:    l.logger,
		level:     l.level,
		component: l.component,
		fields:    merged,
	}
}

// WithComponent returns a logger tagged with component.
func (l *FolioLogger) WithComponent(component string) Logger {
	return &FolioLogger{
		logger:    l.logger,
		level:     l.level,
		component: component,
		fields:    l.fields,
	}
}

func (l *FolioLogger) log(ctx context.Context, level slog.Level, err error, msg string, fields ...any) {
	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields)/2+2)

	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	for k, v := range l.fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			attrs = append(attrs, slog.Any(key, fields[i+1]))
		}
	}

	record := slog.NewRecord(time.Now(), level, msg, 0)
	record.AddAttrs(attrs...)

	_ = l.logger.Handler().Handle(ctx, record)
}

// Nop returns a logger that discards everything. Library entry points use
// it when no logger is configured.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any)        {}
func (nopLogger) Info(context.Context, string, ...any)         {}
func (nopLogger) Warn(context.Context, error, string, ...any)  {}
func (nopLogger) Error(context.Context, error, string, ...any) {}
func (nopLogger) With(...any) Logger                           { return nopLogger{} }
func (nopLogger) WithComponent(string) Logger                  { return nopLogger{} }
