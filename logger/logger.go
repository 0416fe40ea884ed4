package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-gorm/wherex/utils"
)

// ErrRecordNotFound record not found error
var ErrRecordNotFound = errors.New("record not found")

// Colors
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// ParseLevel parses silent, error, warn or info, anything else is Warn
func ParseLevel(level string) LogLevel {
	switch level {
	case "silent":
		return Silent
	case "error":
		return Error
	case "info":
		return Info
	default:
		return Warn
	}
}

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

// Config logger config
type Config struct {
	SlowThreshold             time.Duration
	Colorful                  bool
	IgnoreRecordNotFoundError bool
	ParameterizedQueries      bool
	LogLevel                  LogLevel
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(context.Context, string, ...interface{})
	Warn(context.Context, string, ...interface{})
	Error(context.Context, string, ...interface{})
	Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error)
}

// ParamsFilter hides bound values from traced statements
type ParamsFilter interface {
	ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{})
}

var (
	// Discard logger will print any log to io.Discard
	Discard = New(log.New(io.Discard, "", log.LstdFlags), Config{})
	// Default logger writes warnings and errors to stdout
	Default = New(log.New(os.Stdout, "\r\n", log.LstdFlags), Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      Warn,
		Colorful:      true,
	})
)

// New initialize logger
func New(writer Writer, config Config) Interface {
	return &logger{Writer: writer, Config: config}
}

type logger struct {
	Writer
	Config
}

// LogMode log mode
func (l *logger) LogMode(level LogLevel) Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

// format applies data to msg the way the default logger prints it
func format(msg string, data []interface{}) string {
	if len(data) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, data...)
}

func (l *logger) printf(color, tag, msg string, data ...interface{}) {
	line := fmt.Sprintf("%s [%s] %s", utils.FileWithLineNum(), tag, format(msg, data))
	if l.Colorful {
		line = color + line + Reset
	}
	l.Printf("%s", line)
}

// Info print info
func (l *logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.printf(Blue, "info", msg, data...)
	}
}

// Warn print warn messages
func (l *logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.printf(Yellow, "warn", msg, data...)
	}
}

// Error print error messages
func (l *logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.printf(Red, "error", msg, data...)
	}
}

// Trace print sql message
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	t, ok := l.Config.trace(begin, fc, err)
	if !ok {
		return
	}

	switch t.Level {
	case Error:
		l.printf(Red, "error", "%s %s [%.3fms] [rows:%v] %s", t.Message, t.Err, t.Millis(), t.RowsString(), t.SQL)
	case Warn:
		l.printf(Yellow, "warn", "%s >= %v [%.3fms] [rows:%v] %s", t.Message, t.SlowThreshold, t.Millis(), t.RowsString(), t.SQL)
	default:
		l.printf(Blue, "info", "%s [%.3fms] [rows:%v] %s", t.Message, t.Millis(), t.RowsString(), t.SQL)
	}
}

// ParamsFilter hides params when ParameterizedQueries is set
func (c Config) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if c.ParameterizedQueries {
		return sql, nil
	}
	return sql, params
}

// traceEvent the outcome of a traced statement, rendered by each backend
type traceEvent struct {
	Level         LogLevel
	Message       string
	Elapsed       time.Duration
	SQL           string
	Rows          int64
	Err           error
	SlowThreshold time.Duration
}

// Millis elapsed milliseconds
func (t traceEvent) Millis() float64 {
	return float64(t.Elapsed.Nanoseconds()) / 1e6
}

// RowsString rows or "-" when unknown
func (t traceEvent) RowsString() string {
	if t.Rows == -1 {
		return "-"
	}
	return fmt.Sprint(t.Rows)
}

func (c Config) trace(begin time.Time, fc func() (string, int64), err error) (t traceEvent, ok bool) {
	if c.LogLevel <= Silent {
		return t, false
	}

	t.Elapsed = time.Since(begin)
	switch {
	case err != nil && c.LogLevel >= Error && (!errors.Is(err, ErrRecordNotFound) || !c.IgnoreRecordNotFoundError):
		t.Level, t.Message, t.Err = Error, "statement failed", err
	case c.SlowThreshold != 0 && t.Elapsed > c.SlowThreshold && c.LogLevel >= Warn:
		t.Level, t.Message, t.SlowThreshold = Warn, "slow statement", c.SlowThreshold
	case c.LogLevel == Info:
		t.Level, t.Message = Info, "statement executed"
	default:
		return t, false
	}

	t.SQL, t.Rows = fc()
	return t, true
}
