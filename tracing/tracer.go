package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/openzipkin/zipkin-go/idgenerator"
	"github.com/openzipkin/zipkin-go/model"
	"github.com/zoobzio/clockz"
)

type spanContextKey struct{}

// Tracer manages span lifecycle: it assigns identifiers, tracks parent/child
// relationships through context.Context and fans completed spans out to
// subscribed observers. Safe for concurrent use by multiple goroutines.
type Tracer struct {
	mu        sync.RWMutex
	observers map[string]SpanObserver
	gen       idgenerator.IDGenerator
	clock     clockz.Clock
}

// TracerOption allows for functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
type TracerOption func(t *Tracer)

// TracerClock sets the clock used for span timing. Enables clock injection
// for deterministic testing.
func TracerClock(clock clockz.Clock) TracerOption {
	return func(t *Tracer) { t.clock = clock }
}

// TracerIDGenerator sets the generator used for trace and span identifiers.
// The default produces 128-bit trace IDs.
func TracerIDGenerator(gen idgenerator.IDGenerator) TracerOption {
	return func(t *Tracer) { t.gen = gen }
}

// NewTracer creates a Tracer with no subscribed observers.
func NewTracer(options ...TracerOption) *Tracer {
	t := &Tracer{
		observers: make(map[string]SpanObserver),
		gen:       idgenerator.NewRandom128(),
		clock:     clockz.RealClock,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Subscribe registers observer under the given component name, replacing any
// observer previously registered under that name.
func (t *Tracer) Subscribe(name string, observer SpanObserver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers[name] = observer
}

// Unsubscribe removes the observer registered under the given name.
func (t *Tracer) Unsubscribe(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.observers, name)
}

// StartSpan opens a span for the given operation. If ctx already carries an
// open span, the new span joins its trace as a child; otherwise a new trace
// is started. The returned context carries the open span for use by child
// operations.
func (t *Tracer) StartSpan(ctx context.Context, operation string, spanType SpanType) (context.Context, *OpenSpan) {
	var (
		traceID  string
		parentID string
		spanID   model.ID
	)

	if parent := SpanFromContext(ctx); parent != nil {
		traceID = parent.span.TraceID
		parentID = parent.span.SpanID
		spanID = t.gen.SpanID(model.TraceID{})
	} else {
		tid := t.gen.TraceID()
		traceID = tid.String()
		spanID = t.gen.SpanID(tid)
	}

	start := t.clock.Now()
	sp := &OpenSpan{
		tracer: t,
		start:  start,
		span: Span{
			TraceID:         traceID,
			SpanID:          spanID.String(),
			ParentSpanID:    parentID,
			Operation:       operation,
			StartTimeMicros: start.UnixMicro(),
			Type:            spanType,
		},
	}
	return context.WithValue(ctx, spanContextKey{}, sp), sp
}

// SpanFromContext returns the open span carried by ctx, or nil.
func SpanFromContext(ctx context.Context) *OpenSpan {
	sp, _ := ctx.Value(spanContextKey{}).(*OpenSpan)
	return sp
}

func (t *Tracer) notify(span Span) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, observer := range t.observers {
		observer.Consume(span)
	}
}

// OpenSpan is a span that has been started but not yet finished. Its
// mutating methods are safe for concurrent use; after Finish they are
// no-ops.
type OpenSpan struct {
	tracer   *Tracer
	mu       sync.Mutex
	span     Span
	start    time.Time
	finished bool
}

// TraceID returns the identifier of the trace this span belongs to.
func (s *OpenSpan) TraceID() string { return s.span.TraceID }

// SpanID returns this span's identifier.
func (s *OpenSpan) SpanID() string { return s.span.SpanID }

// SetMetadata attaches a key/value pair to the span. Metadata set after
// Finish is discarded.
func (s *OpenSpan) SetMetadata(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	if s.span.Metadata == nil {
		s.span.Metadata = make(map[string]string)
	}
	s.span.Metadata[key] = value
}

// Finish completes the span, computes its duration and notifies the
// tracer's observers. Only the first call has any effect.
func (s *OpenSpan) Finish() {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	duration := s.tracer.clock.Now().Sub(s.start).Nanoseconds()
	if duration < 0 {
		duration = 0
	}
	s.span.DurationNanos = duration
	span := s.span
	s.mu.Unlock()

	s.tracer.notify(span)
}
