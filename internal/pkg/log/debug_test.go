package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewDebugLogger_All(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := NewDebugLogger()
	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")
	assert.Equal(t, "DEBUG  debug\nINFO  info\nWARN  warn\nERROR  error\n", logger.AllMessagesTxt())
	logger.Truncate()
	assert.Empty(t, logger.AllMessagesTxt())
	assert.Empty(t, logger.AllMessages())
}

func TestNewDebugLogger_Levels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := NewDebugLogger()
	logger.Debug(ctx, "debug")
	logger.Infof(ctx, "info %d", 1)
	logger.Warn(ctx, "warn")
	logger.Errorf(ctx, "error %s", "msg")
	assert.Equal(t, "DEBUG  debug\n", logger.DebugMessages())
	assert.Equal(t, "INFO  info 1\n", logger.InfoMessages())
	assert.Equal(t, "WARN  warn\n", logger.WarnMessages())
	assert.Equal(t, "ERROR  error msg\n", logger.ErrorMessages())
	assert.Equal(t, "WARN  warn\nERROR  error msg\n", logger.WarnAndErrorMessages())
}

func TestNewDebugLogger_JSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := NewDebugLogger()
	logger.WithComponent("metadata").Info(ctx, `Fetching "Account.SubStatus__c" ...`)
	logger.With(attribute.Int("pairs", 3)).Debug(ctx, "Extracted.")

	expected := `
{"level":"info","message":"Fetching \"Account.%s\" ...","component":"metadata"}
{"level":"debug","message":"Extracted.","pairs":3}
`
	logger.AssertJSONMessages(t, expected)
}

func TestCompareJSONMessages_NotFound(t *testing.T) {
	t.Parallel()
	err := CompareJSONMessages(`{"level":"warn"}`, `{"level":"info","message":"foo"}`)
	if assert.Error(t, err) {
		assert.Equal(t, "Expected:\n-----\n{\"level\":\"warn\"}\n-----\nActual:\n-----\n{\"level\":\"info\",\"message\":\"foo\"}", err.Error())
	}
}
