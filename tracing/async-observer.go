package tracing

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultAsyncWorkers   = 1
	defaultAsyncQueueSize = 64

	// errors from the delegate are reported at most once per interval.
	defaultErrorLogInterval = 10 * time.Second
)

var errQueueFull = fmt.Errorf("span queue full, disposing spans")

// AsyncSpanObserver decouples span consumption from span processing. Consume
// performs a single non-blocking submission to a bounded queue serviced by a
// fixed set of worker goroutines; when the queue is saturated the span is
// dropped and counted. Panics raised by the delegate are confined to the
// worker, so a misbehaving observer can never destabilize the instrumented
// application.
type AsyncSpanObserver struct {
	delegate SpanObserver
	errlog   *StateLogger
	workers  int
	spanc    chan Span
	quit     chan struct{}
	wg       sync.WaitGroup
	dropped  atomic.Uint64
	closed   atomic.Bool
}

// AsyncOption sets a parameter for the AsyncSpanObserver.
type AsyncOption func(a *AsyncSpanObserver)

// AsyncWorkers sets the number of worker goroutines servicing the queue.
// The default is a single worker, which preserves submission order.
func AsyncWorkers(n int) AsyncOption {
	return func(a *AsyncSpanObserver) {
		if n > 0 {
			a.workers = n
		}
	}
}

// AsyncQueueSize sets the queue capacity. Once the queue holds this many
// unprocessed spans, further spans are dropped until workers catch up.
func AsyncQueueSize(n int) AsyncOption {
	return func(a *AsyncSpanObserver) {
		if n > 0 {
			a.spanc = make(chan Span, n)
		}
	}
}

// AsyncErrorLogger sets the logger used to report drops and delegate
// failures. By default a no-op logger is used, i.e. no errors are logged
// anywhere. It's important to set this option in a production service.
func AsyncErrorLogger(logger Logger) AsyncOption {
	return func(a *AsyncSpanObserver) {
		a.errlog = NewStateLogger(logger, defaultErrorLogInterval)
	}
}

// NewAsyncSpanObserver returns delegate wrapped for asynchronous
// consumption and starts its workers. Call Close to drain and stop them.
func NewAsyncSpanObserver(delegate SpanObserver, options ...AsyncOption) *AsyncSpanObserver {
	a := &AsyncSpanObserver{
		delegate: delegate,
		errlog:   NewStateLogger(NewNopLogger(), defaultErrorLogInterval),
		workers:  defaultAsyncWorkers,
		spanc:    make(chan Span, defaultAsyncQueueSize),
		quit:     make(chan struct{}),
	}

	for _, option := range options {
		option(a)
	}

	a.wg.Add(a.workers)
	for i := 0; i < a.workers; i++ {
		go a.loop()
	}
	return a
}

// Consume implements SpanObserver. It attempts a non-blocking send on the
// queue and drops the span when the queue is full or the observer closed.
func (a *AsyncSpanObserver) Consume(span Span) {
	if a.closed.Load() {
		a.dropped.Add(1)
		return
	}
	select {
	case a.spanc <- span:
		// Accepted.
	default:
		a.dropped.Add(1)
		a.errlog.LogError(errQueueFull)
	}
}

// Dropped returns the number of spans discarded because the queue was
// saturated or the observer was closed.
func (a *AsyncSpanObserver) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting spans, drains the queue and waits for the workers
// to finish. It is safe to call Close more than once.
func (a *AsyncSpanObserver) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(a.quit)
	a.wg.Wait()
	return nil
}

func (a *AsyncSpanObserver) loop() {
	defer a.wg.Done()
	for {
		select {
		case span := <-a.spanc:
			a.consumeSafely(span)
		case <-a.quit:
			// Drain whatever was accepted before Close.
			for {
				select {
				case span := <-a.spanc:
					a.consumeSafely(span)
				default:
					return
				}
			}
		}
	}
}

func (a *AsyncSpanObserver) consumeSafely(span Span) {
	defer func() {
		if r := recover(); r != nil {
			a.errlog.LogError(fmt.Errorf("span observer panic: %v", r))
		}
	}()
	a.delegate.Consume(span)
}
