package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lingopher/apierror"
)

// FinishSpan ends a span, recording any error pointed to by errPtr first.
// Structured errors also stamp their code on the span, so traces can be
// filtered by failure kind without parsing messages.
// Use with a named error return: `defer observability.FinishSpan(span, &err)`
func FinishSpan(span trace.Span, errPtr *error) {
	if span == nil {
		return
	}
	if errPtr != nil && *errPtr != nil {
		err := *errPtr
		span.RecordError(err, trace.WithStackTrace(true))
		span.SetStatus(codes.Error, err.Error())
		var apiErr *apierror.APIError
		if apierror.AsError(err, &apiErr) {
			span.SetAttributes(attribute.String("error.code", string(apiErr.Code)))
		}
	}
	span.End()
}
