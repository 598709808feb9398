package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the client.
func InitGlobalTracer() {
	globalTracer = otel.Tracer("lingopher")
}

// GetGlobalTracer returns the global tracer instance for the client.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		// Fallback to default tracer if not initialized
		globalTracer = otel.Tracer("lingopher")
	}
	return globalTracer
}

// TraceFunction starts a new span named service.function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceTranslatorFunction starts a new span for a translator operation.
func TraceTranslatorFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "translator", functionName, attributes...)
}

// TraceTransportFunction starts a new span for a transport operation.
func TraceTransportFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "transport", functionName, attributes...)
}

// TraceCLIFunction starts a new span for a CLI command.
func TraceCLIFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "cli", functionName, attributes...)
}

// AttributeSourceLang returns a tracing attribute for a source language code.
func AttributeSourceLang(code string) attribute.KeyValue {
	return attribute.String("translation.source_lang", code)
}

// AttributeTargetLang returns a tracing attribute for a target language code.
func AttributeTargetLang(code string) attribute.KeyValue {
	return attribute.String("translation.target_lang", code)
}

// AttributeTextCount returns a tracing attribute for the number of texts in a batch.
func AttributeTextCount(n int) attribute.KeyValue {
	return attribute.Int("translation.text_count", n)
}

// AttributeEndpoint returns a tracing attribute for an API endpoint path.
func AttributeEndpoint(path string) attribute.KeyValue {
	return attribute.String("api.endpoint", path)
}

// AttributeStatusCode returns a tracing attribute for an HTTP status code.
func AttributeStatusCode(status int) attribute.KeyValue {
	return attribute.Int("http.status_code", status)
}
