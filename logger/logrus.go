package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-gorm/wherex/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger *logrus.Logger
	Config
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{Logger: logger, Config: config}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *LogrusLogger) entry(ctx context.Context, data []interface{}) *logrus.Entry {
	entry := l.Logger.WithField("file", utils.FileWithLineNum()).WithField("data", data)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, data).Info(format(msg, data))
	}
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, data).Warn(format(msg, data))
	}
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, data).Error(format(msg, data))
	}
}

// Trace logs an executed statement
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	t, ok := l.Config.trace(begin, fc, err)
	if !ok {
		return
	}

	fields := logrus.Fields{
		"file":    utils.FileWithLineNum(),
		"elapsed": t.Elapsed.String(),
		"sql":     t.SQL,
	}
	if t.Rows != -1 {
		fields["rows"] = t.Rows
	}

	entry := l.Logger.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}

	switch t.Level {
	case Error:
		entry.WithError(t.Err).Error(t.Message)
	case Warn:
		entry.WithField("slow_threshold", t.SlowThreshold.String()).Warn(t.Message)
	default:
		entry.Info(t.Message)
	}
}
