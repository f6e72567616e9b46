package tracing

import "fmt"

// SpanType describes the relationship between a span and the process that
// recorded it.
type SpanType int

const (
	// SpanTypeLocal covers work performed entirely inside this process.
	SpanTypeLocal SpanType = iota
	// SpanTypeClientOutgoing covers an outgoing call to a remote server.
	SpanTypeClientOutgoing
	// SpanTypeServerIncoming covers the server side handling of an
	// incoming request.
	SpanTypeServerIncoming
)

// String implements fmt.Stringer.
func (t SpanType) String() string {
	switch t {
	case SpanTypeLocal:
		return "LOCAL"
	case SpanTypeClientOutgoing:
		return "CLIENT_OUTGOING"
	case SpanTypeServerIncoming:
		return "SERVER_INCOMING"
	}
	return fmt.Sprintf("SpanType(%d)", int(t))
}

// Span encapsulates a completed, timed unit of work in a trace. Spans are
// handed to SpanObserver implementations once finished and must not be
// mutated afterwards.
type Span struct {
	// TraceID is shared by every span of the same trace.
	TraceID string
	// SpanID identifies this span; unique within the trace.
	SpanID string
	// ParentSpanID is empty for root spans.
	ParentSpanID string
	// Operation is the human readable name of the unit of work.
	Operation string
	// StartTimeMicros is the absolute start time in epoch microseconds.
	StartTimeMicros int64
	// DurationNanos is the elapsed time in nanoseconds, never negative.
	DurationNanos int64
	// Type tells consumers how to interpret the span's timing.
	Type SpanType
	// Metadata carries free-form key/value pairs attached while the span
	// was open. It is not part of the Zipkin wire representation.
	Metadata map[string]string
}
