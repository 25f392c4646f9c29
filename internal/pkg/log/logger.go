// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger is default implementation of the Logger interface.
// It is wrapped zap.SugaredLogger.
type zapLogger struct {
	sugar *zap.SugaredLogger
	core  zapcore.Core
}

func loggerFromZapCore(core zapcore.Core) *zapLogger {
	return &zapLogger{sugar: zap.New(core).Sugar(), core: core}
}

func (l *zapLogger) Debug(_ context.Context, message string) {
	l.sugar.Debug(message)
}

func (l *zapLogger) Info(_ context.Context, message string) {
	l.sugar.Info(message)
}

func (l *zapLogger) Warn(_ context.Context, message string) {
	l.sugar.Warn(message)
}

func (l *zapLogger) Error(_ context.Context, message string) {
	l.sugar.Error(message)
}

func (l *zapLogger) Debugf(_ context.Context, template string, args ...any) {
	l.sugar.Debugf(template, args...)
}

func (l *zapLogger) Infof(_ context.Context, template string, args ...any) {
	l.sugar.Infof(template, args...)
}

func (l *zapLogger) Warnf(_ context.Context, template string, args ...any) {
	l.sugar.Warnf(template, args...)
}

func (l *zapLogger) Errorf(_ context.Context, template string, args ...any) {
	l.sugar.Errorf(template, args...)
}

func (l *zapLogger) With(attrs ...attribute.KeyValue) Logger {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	core := l.core.With(fields)
	return &zapLogger{sugar: zap.New(core).Sugar(), core: core}
}

func (l *zapLogger) WithComponent(component string) Logger {
	return l.With(attribute.String("component", component))
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *zapLogger) ZapCore() zapcore.Core {
	return l.core
}
