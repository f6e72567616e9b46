package tracing

import (
	"fmt"
	"sync"
	"time"

	otobserver "github.com/opentracing-contrib/go-observer"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/openzipkin/zipkin-go/idgenerator"
	"github.com/zoobzio/clockz"
)

// NewOTObserver bridges an OpenTracing tracer that supports the go-observer
// extension point to a SpanObserver of this package, e.g.:
//
//	observer := tracing.NewOTObserver(spanLogger)
//	tracer := zipkintracer.Wrap(zipkinTracer, zipkintracer.WithObserver(observer))
//
// The OpenTracing API does not expose span identifiers, so the bridge
// assigns its own at observation time. The span.kind tag selects the span
// type: "client" maps to SpanTypeClientOutgoing, "server" to
// SpanTypeServerIncoming, everything else to SpanTypeLocal.
func NewOTObserver(consumer SpanObserver) otobserver.Observer {
	return &otBridge{
		consumer: consumer,
		gen:      idgenerator.NewRandom128(),
		clock:    clockz.RealClock,
	}
}

type otBridge struct {
	consumer SpanObserver
	gen      idgenerator.IDGenerator
	clock    clockz.Clock
}

// OnStartSpan implements otobserver.Observer.
func (o *otBridge) OnStartSpan(_ opentracing.Span, operationName string, options opentracing.StartSpanOptions) (otobserver.SpanObserver, bool) {
	start := options.StartTime
	if start.IsZero() {
		start = o.clock.Now()
	}
	tid := o.gen.TraceID()
	so := &otBridgeSpan{
		bridge: o,
		start:  start,
		span: Span{
			TraceID:         tid.String(),
			SpanID:          o.gen.SpanID(tid).String(),
			Operation:       operationName,
			StartTimeMicros: start.UnixMicro(),
			Type:            SpanTypeLocal,
		},
	}
	for key, value := range options.Tags {
		so.applyTag(key, value)
	}
	return so, true
}

type otBridgeSpan struct {
	bridge *otBridge
	mu     sync.Mutex
	span   Span
	start  time.Time
}

// OnSetOperationName implements otobserver.SpanObserver.
func (s *otBridgeSpan) OnSetOperationName(operationName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.span.Operation = operationName
}

// OnSetTag implements otobserver.SpanObserver.
func (s *otBridgeSpan) OnSetTag(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyTag(key, value)
}

// applyTag must be called with s.mu held, except during construction.
func (s *otBridgeSpan) applyTag(key string, value interface{}) {
	if key == string(ext.SpanKind) {
		switch fmt.Sprint(value) {
		case "client":
			s.span.Type = SpanTypeClientOutgoing
		case "server":
			s.span.Type = SpanTypeServerIncoming
		default:
			s.span.Type = SpanTypeLocal
		}
		return
	}
	if s.span.Metadata == nil {
		s.span.Metadata = make(map[string]string)
	}
	s.span.Metadata[key] = fmt.Sprint(value)
}

// OnFinish implements otobserver.SpanObserver.
func (s *otBridgeSpan) OnFinish(options opentracing.FinishOptions) {
	finish := options.FinishTime
	if finish.IsZero() {
		finish = s.bridge.clock.Now()
	}

	s.mu.Lock()
	duration := finish.Sub(s.start).Nanoseconds()
	if duration < 0 {
		duration = 0
	}
	s.span.DurationNanos = duration
	span := s.span
	s.mu.Unlock()

	s.bridge.consumer.Consume(span)
}
