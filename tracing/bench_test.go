package tracing

import (
	"context"
	"testing"
)

func benchSpan(spanType SpanType) Span {
	return Span{
		TraceID:         "463ac35c9f6413ad48485a3953bb6124",
		SpanID:          "72485a3953bb6124",
		ParentSpanID:    "463ac35c9f6413ad",
		Operation:       "get /api/v1/things",
		StartTimeMicros: 1472470996199000,
		DurationNanos:   207123456,
		Type:            spanType,
	}
}

func BenchmarkConvertSpanClient(b *testing.B) {
	sp := benchSpan(SpanTypeClientOutgoing)
	host := WireEndpoint{ServiceName: "frontend", IPv4: "10.0.0.7"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConvertSpan(sp, host)
	}
}

func BenchmarkConvertSpanLocal(b *testing.B) {
	sp := benchSpan(SpanTypeLocal)
	host := WireEndpoint{ServiceName: "frontend", IPv4: "10.0.0.7"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConvertSpan(sp, host)
	}
}

func BenchmarkSpanLoggerConsume(b *testing.B) {
	s := NewSpanLogger("frontend", NewLevelLogger(NewNopLogger(), LevelTrace),
		SpanLoggerLocalIP(nil), SpanLoggerQueueSize(b.N+1))
	defer s.Close()

	sp := benchSpan(SpanTypeClientOutgoing)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Consume(sp)
	}
}

func BenchmarkTracerStartFinish(b *testing.B) {
	tracer := NewTracer()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, span := tracer.StartSpan(ctx, "bench", SpanTypeLocal)
		span.Finish()
	}
}
