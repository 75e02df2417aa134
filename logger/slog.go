//go:build go1.21

package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/resultmap/utils"
)

type slogLogger struct {
	Logger              *slog.Logger
	LogLevel            LogLevel
	SlowThreshold       time.Duration
	IgnoreNotFoundError bool
}

func NewSlogLogger(logger *slog.Logger, config Config) Interface {
	return &slogLogger{
		Logger:              logger,
		LogLevel:            config.LogLevel,
		SlowThreshold:       config.SlowThreshold,
		IgnoreNotFoundError: config.IgnoreNotFoundError,
	}
}

func (l *slogLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, slog.LevelInfo, message(msg, data))
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, slog.LevelWarn, message(msg, data))
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, slog.LevelError, message(msg, data))
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	subject, bound := fc()
	fields := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.String("subject", subject),
		slog.Int64("bound", bound),
	}

	var (
		level = slog.LevelInfo
		msg   = "resolved"
	)
	switch {
	case err != nil && (!l.IgnoreNotFoundError || !errors.Is(err, ErrNotFound)):
		level, msg = slog.LevelError, "resolution failed"
		fields = append(fields, slog.String("error", err.Error()))
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		level, msg = slog.LevelWarn, "SLOW resolution"
		fields = append(fields, slog.Duration("slow_threshold", l.SlowThreshold))
	case l.LogLevel < Info:
		return
	}
	l.log(ctx, level, msg, slog.Attr{Key: "resolution", Value: slog.GroupValue(fields...)})
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Logger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, utils.CallerFrame().PC)
	r.Add(args...)
	_ = l.Logger.Handler().Handle(ctx, r)
}
