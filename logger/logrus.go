package logger

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/resultmap/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger              *logrus.Logger
	LogLevel            LogLevel
	SlowThreshold       time.Duration
	IgnoreNotFoundError bool
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:              logger,
		LogLevel:            config.LogLevel,
		SlowThreshold:       config.SlowThreshold,
		IgnoreNotFoundError: config.IgnoreNotFoundError,
	}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx).Info(message(msg, data))
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx).Warn(message(msg, data))
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx).Error(message(msg, data))
	}
}

func (l *LogrusLogger) entry(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(l.Logger)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry.WithField("file", utils.FileWithLineNum())
}

// Trace logs one resolution step
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	subject, bound := fc()

	entry := l.entry(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed,
		"subject": subject,
		"bound":   bound,
	})

	switch {
	case err != nil && (!l.IgnoreNotFoundError || !errors.Is(err, ErrNotFound)):
		entry.WithError(err).Error("resolution failed")

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		entry.WithField("slow_threshold", l.SlowThreshold).Warn("SLOW resolution")

	case l.LogLevel >= Info:
		entry.Info("resolved")
	}
}
