package tracing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

// spanRecorder collects completed spans synchronously.
type spanRecorder struct {
	mu    sync.Mutex
	spans []Span
}

func (r *spanRecorder) Consume(span Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, span)
}

func (r *spanRecorder) Flush() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()
	spans := r.spans
	r.spans = nil
	return spans
}

func TestTracerCompletedSpan(t *testing.T) {
	clock := clockz.NewFakeClock()
	rec := &spanRecorder{}
	tracer := NewTracer(TracerClock(clock))
	tracer.Subscribe("recorder", rec)

	_, span := tracer.StartSpan(context.Background(), "compute", SpanTypeLocal)
	clock.Advance(2 * time.Millisecond)
	span.Finish()

	spans := rec.Flush()
	require.Len(t, spans, 1)
	sp := spans[0]
	assert.Equal(t, "compute", sp.Operation)
	assert.Equal(t, SpanTypeLocal, sp.Type)
	assert.NotEmpty(t, sp.TraceID)
	assert.NotEmpty(t, sp.SpanID)
	assert.Empty(t, sp.ParentSpanID)
	assert.Equal(t, (2 * time.Millisecond).Nanoseconds(), sp.DurationNanos)
}

func TestTracerParentLinkage(t *testing.T) {
	rec := &spanRecorder{}
	tracer := NewTracer()
	tracer.Subscribe("recorder", rec)

	ctx, parent := tracer.StartSpan(context.Background(), "parent", SpanTypeServerIncoming)
	_, child := tracer.StartSpan(ctx, "child", SpanTypeClientOutgoing)
	child.Finish()
	parent.Finish()

	spans := rec.Flush()
	require.Len(t, spans, 2)
	childSpan, parentSpan := spans[0], spans[1]
	assert.Equal(t, parentSpan.TraceID, childSpan.TraceID)
	assert.Equal(t, parentSpan.SpanID, childSpan.ParentSpanID)
	assert.NotEqual(t, parentSpan.SpanID, childSpan.SpanID)
	assert.Empty(t, parentSpan.ParentSpanID)
}

func TestTracerFinishIsIdempotent(t *testing.T) {
	rec := &spanRecorder{}
	tracer := NewTracer()
	tracer.Subscribe("recorder", rec)

	_, span := tracer.StartSpan(context.Background(), "x", SpanTypeLocal)
	span.Finish()
	span.Finish()

	assert.Len(t, rec.Flush(), 1)
}

func TestTracerUnsubscribe(t *testing.T) {
	rec := &spanRecorder{}
	tracer := NewTracer()
	tracer.Subscribe("recorder", rec)
	tracer.Unsubscribe("recorder")

	_, span := tracer.StartSpan(context.Background(), "x", SpanTypeLocal)
	span.Finish()

	assert.Empty(t, rec.Flush())
}

func TestTracerMetadata(t *testing.T) {
	rec := &spanRecorder{}
	tracer := NewTracer()
	tracer.Subscribe("recorder", rec)

	_, span := tracer.StartSpan(context.Background(), "x", SpanTypeLocal)
	span.SetMetadata("userAgent", "test-client")
	span.Finish()
	span.SetMetadata("late", "discarded")

	spans := rec.Flush()
	require.Len(t, spans, 1)
	assert.Equal(t, map[string]string{"userAgent": "test-client"}, spans[0].Metadata)
}

func TestSpanFromContext(t *testing.T) {
	tracer := NewTracer()

	assert.Nil(t, SpanFromContext(context.Background()))

	ctx, span := tracer.StartSpan(context.Background(), "x", SpanTypeLocal)
	assert.Same(t, span, SpanFromContext(ctx))
}
