package tracing

import "fmt"

// Core annotation values understood by Zipkin consumers.
const (
	clientSend     = "cs"
	clientReceive  = "cr"
	serverReceive  = "sr"
	serverSend     = "ss"
	localComponent = "lc"
)

// WireSpan is the Zipkin-compatible shape of a completed span. Optional
// fields carry omitempty so absent values disappear from the serialized
// form instead of being rendered as null.
type WireSpan struct {
	TraceID     string           `json:"traceId"`
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	ParentID    string           `json:"parentId,omitempty"`
	Timestamp   int64            `json:"timestamp"`
	Duration    int64            `json:"duration"`
	Annotations []WireAnnotation `json:"annotations"`
}

// WireAnnotation marks a point-in-time event on a WireSpan.
type WireAnnotation struct {
	Timestamp int64        `json:"timestamp"`
	Value     string       `json:"value"`
	Endpoint  WireEndpoint `json:"endpoint"`
}

// WireEndpoint names the service and host a span was recorded on. At most
// one of IPv4/IPv6 is set.
type WireEndpoint struct {
	ServiceName string `json:"serviceName"`
	IPv4        string `json:"ipv4,omitempty"`
	IPv6        string `json:"ipv6,omitempty"`
}

// ConvertSpan maps a completed span onto the Zipkin wire shape, encoding the
// span's timing through paired annotations. Conversion is pure: the same
// span and host always yield an identical WireSpan.
func ConvertSpan(sp Span, host WireEndpoint) WireSpan {
	return WireSpan{
		TraceID:     sp.TraceID,
		ID:          sp.SpanID,
		Name:        sp.Operation,
		ParentID:    sp.ParentSpanID,
		Timestamp:   sp.StartTimeMicros,
		Duration:    nanoToMicro(sp.DurationNanos),
		Annotations: coreAnnotations(sp, host),
	}
}

func coreAnnotations(sp Span, host WireEndpoint) []WireAnnotation {
	start := sp.StartTimeMicros
	end := start + nanoToMicro(sp.DurationNanos)

	switch sp.Type {
	case SpanTypeClientOutgoing:
		return []WireAnnotation{
			{Timestamp: start, Value: clientSend, Endpoint: host},
			{Timestamp: end, Value: clientReceive, Endpoint: host},
		}
	case SpanTypeServerIncoming:
		return []WireAnnotation{
			{Timestamp: start, Value: serverReceive, Endpoint: host},
			{Timestamp: end, Value: serverSend, Endpoint: host},
		}
	case SpanTypeLocal:
		return []WireAnnotation{
			{Timestamp: start, Value: localComponent, Endpoint: host},
		}
	}
	// SpanType is a closed enumeration; reaching this is a programming
	// error, not a data case.
	panic(fmt.Sprintf("tracing: unhandled span type %v", sp.Type))
}

// nanoToMicro converts nanoseconds to the microseconds Zipkin expects.
// Consumers depend on this exact rounding, do not change it.
func nanoToMicro(nanos int64) int64 {
	return (nanos + 1000) / 1000
}
