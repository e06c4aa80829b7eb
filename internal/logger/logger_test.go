package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe replaces the global logger with an observer that follows the global level.
func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	originalLogger := Logger()
	originalLevel := Level()

	core, logs := observer.New(globalLevel)

	SetLogger(zap.New(core).Sugar())
	SetLevel(level)

	t.Cleanup(func() {
		SetLogger(originalLogger)
		SetLevel(originalLevel)
	})

	return logs
}

// TestNew tests that loggers follow either their own or the global level.
//
//nolint:paralleltest // Mutates the global level.
func TestNew(t *testing.T) {
	originalLevel := Level()
	defer SetLevel(originalLevel)

	following := New(nil)
	fixed := New(zapcore.ErrorLevel)

	SetLevel(zapcore.DebugLevel)
	assert.True(t, following.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.False(t, fixed.Desugar().Core().Enabled(zapcore.WarnLevel))

	SetLevel(zapcore.WarnLevel)
	assert.False(t, following.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, fixed.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

// TestParseLogLevel tests the ParseLogLevel function.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
		ok       bool
	}{
		{input: "debug", expected: zapcore.DebugLevel, ok: true},
		{input: "INFO", expected: zapcore.InfoLevel, ok: true},
		{input: " warn ", expected: zapcore.WarnLevel, ok: true},
		{input: "error", expected: zapcore.ErrorLevel, ok: true},
		{input: "fatal", expected: zapcore.FatalLevel, ok: true},
		{input: "", expected: zapcore.InfoLevel, ok: false},
		{input: "verbose", expected: zapcore.InfoLevel, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			level, ok := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// TestSetLevel tests SetLevel together with Level and IsDebugLevel.
//
//nolint:paralleltest // Mutates the global level.
func TestSetLevel(t *testing.T) {
	originalLevel := Level()
	defer SetLevel(originalLevel)

	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebugLevel())

	SetLevel(zapcore.InfoLevel)
	assert.Equal(t, zapcore.InfoLevel, Level())
	assert.False(t, IsDebugLevel())
}

// TestContextHelpers tests that entries respect the level and carry context fields.
//
//nolint:paralleltest // Mutates the global logger.
func TestContextHelpers(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	ctx := WithKV(context.Background(), "request_id", "42")

	Debugf(ctx, "hidden %d", 1)
	Infof(ctx, "sent %d calls", 3)
	Warnf(context.Background(), "cancelled %s", "orders")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "sent 3 calls", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "42", entries[0].ContextMap()["request_id"])

	assert.Equal(t, "cancelled orders", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Empty(t, entries[1].ContextMap())

	SetLevel(zapcore.DebugLevel)
	Debugf(ctx, "visible %d", 2)
	assert.Equal(t, 1, logs.FilterMessage("visible 2").Len())
}

// TestFromContext tests that loggers stored in a context take precedence over the global one.
func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // Nil context is handled explicitly.

	custom := New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	enriched := WithKV(ctx, "tag", "orders")
	assert.NotSame(t, custom, FromContext(enriched))
	assert.NotNil(t, FromContext(enriched))
}

// TestSetLogger_Concurrent tests that the global logger can be swapped while in use.
//
//nolint:paralleltest // Mutates the global logger.
func TestSetLogger_Concurrent(t *testing.T) {
	observe(t, zapcore.ErrorLevel)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			Debugf(context.Background(), "concurrent")
		}()

		go func() {
			defer wg.Done()

			SetLogger(Logger())
		}()
	}

	wg.Wait()
}
