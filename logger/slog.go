package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gorm/wherex/utils"
)

type slogLogger struct {
	Logger *slog.Logger
	Config
}

// NewSlogLogger creates a new logger using log/slog, Colorful is ignored
func NewSlogLogger(logger *slog.Logger, config Config) Interface {
	return &slogLogger{Logger: logger, Config: config}
}

func (l *slogLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, slog.LevelInfo, format(msg, data), slog.Any("data", data))
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, slog.LevelWarn, format(msg, data), slog.Any("data", data))
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, slog.LevelError, format(msg, data), slog.Any("data", data))
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	t, ok := l.Config.trace(begin, fc, err)
	if !ok {
		return
	}

	attrs := []slog.Attr{
		slog.Duration("elapsed", t.Elapsed),
		slog.String("sql", t.SQL),
	}
	if t.Rows != -1 {
		attrs = append(attrs, slog.Int64("rows", t.Rows))
	}

	level := slog.LevelInfo
	switch t.Level {
	case Error:
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", t.Err.Error()))
	case Warn:
		level = slog.LevelWarn
		attrs = append(attrs, slog.Duration("slow_threshold", t.SlowThreshold))
	}

	l.log(ctx, level, t.Message, slog.Attr{Key: "trace", Value: slog.GroupValue(attrs...)})
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
