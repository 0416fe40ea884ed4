package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-gorm/wherex/utils"
)

// ZerologLogger implements Interface using zerolog
type ZerologLogger struct {
	Logger zerolog.Logger
	Config
}

// NewZerologLogger creates a new logger using zerolog
func NewZerologLogger(logger zerolog.Logger, config Config) Interface {
	return &ZerologLogger{Logger: logger, Config: config}
}

// LogMode sets the log level
func (l *ZerologLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *ZerologLogger) log(ctx context.Context, event *zerolog.Event, msg string, data []interface{}) {
	event = event.Str("file", utils.FileWithLineNum()).Interface("data", data)
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	event.Msg(format(msg, data))
}

func (l *ZerologLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, l.Logger.Info(), msg, data)
	}
}

func (l *ZerologLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, l.Logger.Warn(), msg, data)
	}
}

func (l *ZerologLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, l.Logger.Error(), msg, data)
	}
}

// Trace logs an executed statement
func (l *ZerologLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	t, ok := l.Config.trace(begin, fc, err)
	if !ok {
		return
	}

	var event *zerolog.Event
	switch t.Level {
	case Error:
		event = l.Logger.Error().Err(t.Err)
	case Warn:
		event = l.Logger.Warn().Dur("slow_threshold", t.SlowThreshold)
	default:
		event = l.Logger.Info()
	}

	event = event.
		Str("file", utils.FileWithLineNum()).
		Dur("elapsed", t.Elapsed).
		Str("sql", t.SQL)
	if t.Rows != -1 {
		event = event.Int64("rows", t.Rows)
	}
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	event.Msg(t.Message)
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
	default:
		return zerolog.InfoLevel
	}
}
