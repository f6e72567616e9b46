package tracing

import (
	"fmt"
	"sync"
	"time"
)

var errNoError = fmt.Errorf("not an error")

// StateLogger is a Logger wrapper that reports an error only if interval has
// passed since the last report, or it is a different error than the last
// seen. Span emission can fail once per span; without throttling a wedged
// sink would flood the log.
type StateLogger struct {
	logger        Logger
	interval      time.Duration
	mu            sync.Mutex
	lastError     error
	lastErrorTime time.Time
}

// NewStateLogger creates a StateLogger reporting through logger at most once
// per interval for a repeating error.
func NewStateLogger(logger Logger, interval time.Duration) *StateLogger {
	return &StateLogger{
		logger:    logger,
		interval:  interval,
		lastError: errNoError,
	}
}

// LogError logs err if it differs from the last seen error or if the
// configured interval has passed since the last report.
func (s *StateLogger) LogError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == s.lastError && time.Since(s.lastErrorTime) < s.interval {
		return
	}
	_ = s.logger.Log("err", err.Error())
	s.lastError = err
	s.lastErrorTime = time.Now()
}

// Fixed tells the StateLogger the previously reported condition is resolved,
// so the next error will be logged immediately.
func (s *StateLogger) Fixed(keyvals ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interval == 0 || s.lastError == nil {
		return
	}
	_ = s.logger.Log(keyvals...)
	s.lastError = nil
}
