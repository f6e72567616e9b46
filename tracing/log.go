package tracing

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

// Logger interface used by the tracing package to emit span output and to
// report its own operational errors.
type Logger interface {
	Log(keyvals ...interface{}) error
}

// NewNopLogger provides a Logger that discards all Log data sent to it.
func NewNopLogger() Logger {
	return &nopLogger{}
}

// LogWrapper wraps a standard library logger into a Logger compatible with
// this package.
func LogWrapper(l *log.Logger) Logger {
	return &wrappedLogger{l: l}
}

type wrappedLogger struct {
	l *log.Logger
}

// Log implements Logger.
func (l *wrappedLogger) Log(k ...interface{}) error {
	if len(k)%2 == 1 {
		k = append(k, "(MISSING)")
	}
	s := make([]string, 0, len(k)/2)
	for i := 0; i < len(k); i += 2 {
		s = append(s, fmt.Sprintf("%s=%v", k[i], k[i+1]))
	}
	l.l.Println(strings.Join(s, " "))
	return nil
}

type nopLogger struct{}

// Log implements Logger.
func (*nopLogger) Log(_ ...interface{}) error { return nil }

// Level indicates the detail level of log output.
type Level int32

// Available log levels, ordered from least to most detailed.
const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// ParseLevel maps a textual level to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	}
	return LevelError, fmt.Errorf("tracing: unknown log level %q", s)
}

// LevelLogger filters Log calls above a configured detail level. The level
// can be changed at runtime; Enabled is a single atomic load so callers can
// cheaply skip work for disabled output.
type LevelLogger struct {
	logger Logger
	level  atomic.Int32
}

// NewLevelLogger wraps logger with a level filter initially set to level.
func NewLevelLogger(logger Logger, level Level) *LevelLogger {
	l := &LevelLogger{logger: logger}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the maximum detail level that will be emitted.
func (l *LevelLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Enabled reports whether output at the given level would be emitted.
func (l *LevelLogger) Enabled(level Level) bool {
	return Level(l.level.Load()) >= level
}

// Log forwards keyvals to the underlying logger if level is enabled.
func (l *LevelLogger) Log(level Level, keyvals ...interface{}) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.logger.Log(keyvals...)
}
