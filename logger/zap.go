package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/resultmap/utils"
)

// ZapLogger implements Interface using zap
type ZapLogger struct {
	Logger              *zap.Logger
	LogLevel            LogLevel
	SlowThreshold       time.Duration
	IgnoreNotFoundError bool
}

// NewZapLogger creates a new logger using zap
func NewZapLogger(logger *zap.Logger, config Config) Interface {
	return &ZapLogger{
		Logger:              logger,
		LogLevel:            config.LogLevel,
		SlowThreshold:       config.SlowThreshold,
		IgnoreNotFoundError: config.IgnoreNotFoundError,
	}
}

// NewZapLoggerWithConfig creates a new zap logger with custom configuration
func NewZapLoggerWithConfig(config Config, zapConfig ...zap.Config) Interface {
	var zapCfg zap.Config
	if len(zapConfig) > 0 {
		zapCfg = zapConfig[0]
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(ZapLevel(config.LogLevel))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		// Fallback to development config
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(ZapLevel(config.LogLevel))
		logger, _ = zapCfg.Build()
	}

	return NewZapLogger(logger, config)
}

// LogMode sets the log level
func (l *ZapLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *ZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Logger.Info(message(msg, data), zap.String("file", utils.FileWithLineNum()))
	}
}

// Warn logs warning messages
func (l *ZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Logger.Warn(message(msg, data), zap.String("file", utils.FileWithLineNum()))
	}
}

// Error logs error messages
func (l *ZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Logger.Error(message(msg, data), zap.String("file", utils.FileWithLineNum()))
	}
}

// Trace logs one resolution step
func (l *ZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	subject, bound := fc()

	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.String("subject", subject),
		zap.Int64("bound", bound),
	}

	switch {
	case err != nil && (!l.IgnoreNotFoundError || !errors.Is(err, ErrNotFound)):
		fields = append(fields, zap.Error(err))
		l.Logger.Error("resolution failed", fields...)

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		fields = append(fields, zap.Duration("slow_threshold", l.SlowThreshold))
		l.Logger.Warn("SLOW resolution", fields...)

	case l.LogLevel >= Info:
		l.Logger.Info("resolved", fields...)
	}
}

// WithField adds a field to the logger
func (l *ZapLogger) WithField(key string, value interface{}) *ZapLogger {
	newLogger := *l
	newLogger.Logger = l.Logger.With(zap.Any(key, value))
	return &newLogger
}

// ZapLevel converts LogLevel to zapcore.Level
func ZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case Silent:
		return zapcore.DPanicLevel // DPanic keeps a silent logger quiet without panicking in production
	case Error:
		return zapcore.ErrorLevel
	case Warn:
		return zapcore.WarnLevel
	case Info:
		return zapcore.InfoLevel
	default:
		return zapcore.InfoLevel
	}
}
