package tracing

// A SpanObserver is notified of every span completed by a Tracer it is
// subscribed to. Consume is invoked once per completed span, on the
// goroutine that finished the span, so implementations must be cheap and
// non-blocking; expensive work belongs behind an AsyncSpanObserver.
type SpanObserver interface {
	Consume(span Span)
}

// SpanObserverFunc adapts a plain function to the SpanObserver interface.
type SpanObserverFunc func(span Span)

// Consume implements SpanObserver.
func (f SpanObserverFunc) Consume(span Span) { f(span) }
