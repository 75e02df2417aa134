package logger

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/resultmap/utils"
)

// ZerologLogger implements Interface using zerolog
type ZerologLogger struct {
	Logger              zerolog.Logger
	LogLevel            LogLevel
	SlowThreshold       time.Duration
	IgnoreNotFoundError bool
}

// NewZerologLogger creates a new logger using zerolog
func NewZerologLogger(logger zerolog.Logger, config Config) Interface {
	return &ZerologLogger{
		Logger:              logger,
		LogLevel:            config.LogLevel,
		SlowThreshold:       config.SlowThreshold,
		IgnoreNotFoundError: config.IgnoreNotFoundError,
	}
}

// NewZerologLoggerWithConfig creates a new zerolog logger writing to a console writer on stdout
func NewZerologLoggerWithConfig(config Config) Interface {
	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stdout
		w.TimeFormat = time.RFC3339
		w.NoColor = !config.Colorful
	})
	logger := zerolog.New(consoleWriter).
		Level(ZerologLevel(config.LogLevel)).
		With().
		Timestamp().
		Logger()

	return NewZerologLogger(logger, config)
}

// LogMode sets the log level
func (l *ZerologLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *ZerologLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.event(ctx, l.Logger.Info()).Msg(message(msg, data))
	}
}

// Warn logs warning messages
func (l *ZerologLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.event(ctx, l.Logger.Warn()).Msg(message(msg, data))
	}
}

// Error logs error messages
func (l *ZerologLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.event(ctx, l.Logger.Error()).Msg(message(msg, data))
	}
}

func (l *ZerologLogger) event(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	event = event.Str("file", utils.FileWithLineNum())
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	return event
}

// Trace logs one resolution step
func (l *ZerologLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	subject, bound := fc()

	var (
		event *zerolog.Event
		msg   = "resolved"
	)
	switch {
	case err != nil && (!l.IgnoreNotFoundError || !errors.Is(err, ErrNotFound)):
		event = l.Logger.Error().Err(err)
		msg = "resolution failed"
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		event = l.Logger.Warn().Dur("slow_threshold", l.SlowThreshold)
		msg = "SLOW resolution"
	case l.LogLevel >= Info:
		event = l.Logger.Info()
	default:
		return
	}

	l.event(ctx, event).
		Dur("elapsed", elapsed).
		Str("subject", subject).
		Int64("bound", bound).
		Msg(msg)
}

// ZerologLevel converts LogLevel to zerolog.Level
func ZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case Silent:
		return zerolog.Disabled
	case Error:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	case Info:
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
