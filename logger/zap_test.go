package logger

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferedZap() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	return zap.New(core), &buf
}

func TestNewZapLogger(t *testing.T) {
	zapLogger, _ := newBufferedZap()

	zapAdapter := NewZapLogger(zapLogger, Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
		Colorful:      true,
	})

	require.NotNil(t, zapAdapter)
	assert.Equal(t, Info, zapAdapter.(*ZapLogger).LogLevel)
	assert.Equal(t, 100*time.Millisecond, zapAdapter.(*ZapLogger).SlowThreshold)
}

func TestZapLogger_LogMode(t *testing.T) {
	logger := NewZapLogger(zap.NewNop(), Config{LogLevel: Error})

	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZapLogger).LogLevel)

	// original is not affected
	assert.Equal(t, Error, logger.(*ZapLogger).LogLevel)
}

func TestZapLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	zapLogger, buf := newBufferedZap()
	logger := NewZapLogger(zapLogger, Config{LogLevel: Info})

	tests := []struct {
		name   string
		level  LogLevel
		logMsg string
	}{
		{"Info level", Info, "resolving target type"},
		{"Warn level", Warn, "constructor without parameter names"},
		{"Error level", Error, "namespace resolution aborted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			switch tt.level {
			case Info:
				logger.Info(ctx, tt.logMsg+" %s=%v", "key", "value")
			case Warn:
				logger.Warn(ctx, tt.logMsg+" %s=%v", "key", "value")
			case Error:
				logger.Error(ctx, tt.logMsg+" %s=%v", "key", "value")
			}

			output := buf.String()
			assert.Contains(t, output, tt.logMsg)
			assert.Contains(t, output, "key=value")
		})
	}

	t.Run("Suppressed below level", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Warn).Info(ctx, "hidden")
		assert.Empty(t, buf.String())
	})
}

func TestZapLogger_Trace(t *testing.T) {
	ctx := context.Background()
	zapLogger, buf := newBufferedZap()
	logger := NewZapLogger(zapLogger, Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
	})

	t.Run("Normal trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "arguments blog.Author", 2
		}, nil)

		output := buf.String()
		assert.Contains(t, output, "arguments blog.Author")
		assert.Contains(t, output, `"bound":2`)
		assert.Contains(t, output, "elapsed")
	})

	t.Run("Slow resolution", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now().Add(-150*time.Millisecond), func() (string, int64) {
			return "namespaces", 1000
		}, nil)

		output := buf.String()
		assert.Contains(t, output, "SLOW")
		assert.Contains(t, output, "slow_threshold")
	})

	t.Run("Error trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "namespace A", 0
		}, assert.AnError)

		output := buf.String()
		assert.Contains(t, output, "namespace A")
		assert.Contains(t, output, "error")
	})

	t.Run("Not found error with ignore", func(t *testing.T) {
		buf.Reset()
		logger := logger.LogMode(Error)
		logger.(*ZapLogger).IgnoreNotFoundError = true

		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "lookup", 0
		}, fmt.Errorf("cache %q: %w", "A", ErrNotFound))

		assert.Empty(t, buf.String())
	})
}

func TestZapLogger_SilentLevel(t *testing.T) {
	zapLogger, buf := newBufferedZap()
	logger := NewZapLogger(zapLogger, Config{LogLevel: Silent})

	logger.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "namespaces", 1
	}, assert.AnError)
	logger.Error(context.Background(), "boom")

	assert.Empty(t, buf.String())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DPanicLevel, ZapLevel(Silent))
	assert.Equal(t, zapcore.ErrorLevel, ZapLevel(Error))
	assert.Equal(t, zapcore.WarnLevel, ZapLevel(Warn))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(Info))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(LogLevel(99)))
}

func TestZapLogger_WithField(t *testing.T) {
	zapLogger, buf := newBufferedZap()
	logger := NewZapLogger(zapLogger, Config{LogLevel: Info}).(*ZapLogger)

	logger.WithField("load", "blog").Info(context.Background(), "loading")
	assert.Contains(t, buf.String(), `"load":"blog"`)
}
