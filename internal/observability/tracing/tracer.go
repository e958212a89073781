package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("easy-news")

// GetTracer returns the service tracer for creating spans:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "ingest.run")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
