// Package log provides the logger used across the application.
//
// The Logger interface is implemented by a wrapped zap.SugaredLogger.
// Each method takes the context as the first argument, so the logging API is the same in all layers.
package log

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger interface {
	contextLogger
	withAttributes
}

type contextLogger interface {
	// Debug logs message in the debug level.
	Debug(ctx context.Context, message string)
	// Info logs message in the info level.
	Info(ctx context.Context, message string)
	// Warn logs message in the warning level.
	Warn(ctx context.Context, message string)
	// Error logs message in the error level.
	Error(ctx context.Context, message string)

	// Debugf logs formatted message in the debug level.
	Debugf(ctx context.Context, template string, args ...any)
	// Infof logs formatted message in the info level.
	Infof(ctx context.Context, template string, args ...any)
	// Warnf logs formatted message in the warning level.
	Warnf(ctx context.Context, template string, args ...any)
	// Errorf logs formatted message in the error level.
	Errorf(ctx context.Context, template string, args ...any)

	Sync() error
}

type withAttributes interface {
	With(attrs ...attribute.KeyValue) Logger
	WithComponent(component string) Logger
}
