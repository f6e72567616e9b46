package tracing

import (
	"encoding/json"
	"fmt"
	"net"
)

// spanLogKey is the key under which the serialized span is logged.
const spanLogKey = "span"

// MarshalFunc renders a WireSpan to its serialized form. The default is
// encoding/json's Marshal; tests inject failing implementations.
type MarshalFunc func(v interface{}) ([]byte, error)

// SpanLogger is a SpanObserver that logs every completed span as a single
// Zipkin-compatible line of text. Conversion, serialization and I/O happen
// asynchronously on the workers of an embedded AsyncSpanObserver, keeping
// Consume off the critical path of the instrumented application. Output is
// emitted at trace detail level and skipped entirely, without conversion or
// serialization work, while that level is disabled.
type SpanLogger struct {
	async    *AsyncSpanObserver
	logger   *LevelLogger
	endpoint WireEndpoint
	marshal  MarshalFunc
}

// SpanLoggerOption allows for functional options.
type SpanLoggerOption func(s *spanLoggerOptions)

type spanLoggerOptions struct {
	ip      net.IP
	ipSet   bool
	marshal MarshalFunc
	async   []AsyncOption
}

// SpanLoggerLocalIP sets the local address attached to every annotation,
// overriding the default hostname based resolution. A nil ip yields an
// endpoint with no address at all.
func SpanLoggerLocalIP(ip net.IP) SpanLoggerOption {
	return func(s *spanLoggerOptions) {
		s.ip = ip
		s.ipSet = true
	}
}

// SpanLoggerMarshaler sets the serializer used to render spans.
func SpanLoggerMarshaler(marshal MarshalFunc) SpanLoggerOption {
	return func(s *spanLoggerOptions) {
		if marshal != nil {
			s.marshal = marshal
		}
	}
}

// SpanLoggerWorkers sets the number of worker goroutines performing
// conversion, serialization and logging.
func SpanLoggerWorkers(n int) SpanLoggerOption {
	return func(s *spanLoggerOptions) {
		s.async = append(s.async, AsyncWorkers(n))
	}
}

// SpanLoggerQueueSize sets the capacity of the pending span queue.
func SpanLoggerQueueSize(n int) SpanLoggerOption {
	return func(s *spanLoggerOptions) {
		s.async = append(s.async, AsyncQueueSize(n))
	}
}

// SpanLoggerErrorLogger sets the logger used to report dropped spans.
func SpanLoggerErrorLogger(logger Logger) SpanLoggerOption {
	return func(s *spanLoggerOptions) {
		s.async = append(s.async, AsyncErrorLogger(logger))
	}
}

// NewSpanLogger creates a SpanLogger for the given service writing to
// logger. The local endpoint is constructed once, here; by default its
// address is resolved from the local host name.
func NewSpanLogger(serviceName string, logger *LevelLogger, options ...SpanLoggerOption) *SpanLogger {
	opts := spanLoggerOptions{marshal: json.Marshal}
	for _, option := range options {
		option(&opts)
	}
	if !opts.ipSet {
		opts.ip = localIP()
	}

	s := &SpanLogger{
		logger:   logger,
		endpoint: MakeEndpoint(serviceName, opts.ip),
		marshal:  opts.marshal,
	}
	s.async = NewAsyncSpanObserver(SpanObserverFunc(s.logSpan), opts.async...)
	return s
}

// Consume implements SpanObserver. It never blocks and never fails; under
// saturation spans are dropped in favor of application stability.
func (s *SpanLogger) Consume(span Span) {
	s.async.Consume(span)
}

// Endpoint returns the local endpoint attached to every annotation.
func (s *SpanLogger) Endpoint() WireEndpoint {
	return s.endpoint
}

// Dropped returns the number of spans discarded under saturation.
func (s *SpanLogger) Dropped() uint64 {
	return s.async.Dropped()
}

// Close drains pending spans and stops the workers.
func (s *SpanLogger) Close() error {
	return s.async.Close()
}

// logSpan runs on a worker goroutine, once per consumed span.
func (s *SpanLogger) logSpan(span Span) {
	if !s.logger.Enabled(LevelTrace) {
		return
	}
	wireSpan := ConvertSpan(span, s.endpoint)
	b, err := s.marshal(wireSpan)
	if err != nil {
		// Degrade to a readable form rather than losing the record.
		_ = s.logger.Log(LevelTrace, spanLogKey, fmt.Sprintf("UNSERIALIZABLE: %+v", wireSpan))
		return
	}
	_ = s.logger.Log(LevelTrace, spanLogKey, string(b))
}
