// Package tracing provides a minimal span lifecycle and a Zipkin-compatible
// span logging exporter.
//
// A Tracer opens spans, links them to their parents through context.Context
// and hands every finished span to subscribed SpanObserver implementations.
// The SpanLogger observer converts each span into the Zipkin wire shape and
// writes it as a single JSON line at trace detail level, off the critical
// path of the instrumented application:
//
//	logger := tracing.NewLevelLogger(tracing.LogWrapper(log.Default()), tracing.LevelTrace)
//	spanLogger := tracing.NewSpanLogger("my-service", logger)
//	defer spanLogger.Close()
//
//	tracer := tracing.NewTracer()
//	tracer.Subscribe("span-logger", spanLogger)
//
//	ctx, span := tracer.StartSpan(ctx, "compute", tracing.SpanTypeLocal)
//	defer span.Finish()
//
// Span emission never blocks and never fails across the Consume boundary;
// under queue saturation spans are dropped in favor of application
// stability.
package tracing
