// Package transport moves requests to the Lingopher API and returns raw
// responses. It owns connections, authentication headers, and telemetry;
// it deliberately does not interpret status codes, so retry policy stays
// with the caller.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lingopher/apierror"
	"lingopher/internal/observability"
	"lingopher/internal/version"
)

// Request is one API call: form parameters for POSTs, query parameters for
// GETs, decided by Method.
type Request struct {
	Method string
	Path   string
	Params url.Values
}

// Response is the raw result of a delivered request. A Response exists only
// when the service actually answered; transport failures surface as errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Sender delivers a request and returns the service's raw response. The
// error return covers transport failures only: any HTTP status, including
// 4xx and 5xx, arrives as a Response.
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPSender is the production Sender on net/http.
type HTTPSender struct {
	client    *http.Client
	baseURL   string
	authKey   string
	userAgent string
	logger    *observability.Logger
}

// NewHTTPSender creates a sender with an OpenTelemetry-instrumented HTTP
// client bounded by timeout.
func NewHTTPSender(baseURL, authKey string, timeout time.Duration, logger *observability.Logger) *HTTPSender {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
		),
	}
	return NewHTTPSenderWithClient(baseURL, authKey, httpClient, logger)
}

// NewHTTPSenderWithClient creates a sender on a caller-supplied HTTP client,
// for callers that need their own proxy, TLS, or transport settings.
func NewHTTPSenderWithClient(baseURL, authKey string, client *http.Client, logger *observability.Logger) *HTTPSender {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}
	return &HTTPSender{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		authKey:   authKey,
		userAgent: version.UserAgent(),
		logger:    logger,
	}
}

// Send implements Sender.
func (s *HTTPSender) Send(ctx context.Context, req *Request) (result0 *Response, err error) {
	ctx, span := observability.TraceTransportFunction(ctx, "send",
		observability.AttributeEndpoint(req.Path),
		attribute.String("http.method", req.Method),
	)
	defer observability.FinishSpan(span, &err)

	httpReq, err := s.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, apierror.WrapErrorf(err, "failed to create HTTP request for %s", req.Path)
	}

	startTime := time.Now()
	resp, err := s.client.Do(httpReq)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error(ctx, "HTTP request failed", err, map[string]interface{}{
			"endpoint": req.Path,
			"duration": duration.String(),
		})
		// Context endings are the caller's cancellation, not a network fault.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apierror.NewWithCause(apierror.ErrorCodeCancelled, apierror.SeverityInfo,
				"Operation cancelled", ctxErr.Error(), err)
		}
		return nil, apierror.NewWithCause(apierror.ErrorCodeNetwork, apierror.SeverityWarn,
			"Network error", err.Error(), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn(ctx, "Failed to close response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.NewWithCause(apierror.ErrorCodeNetwork, apierror.SeverityWarn,
			"Network error", "failed to read response body", err)
	}

	span.SetAttributes(observability.AttributeStatusCode(resp.StatusCode))
	s.logger.Debug(ctx, "HTTP request completed", map[string]interface{}{
		"endpoint":    req.Path,
		"duration":    duration.String(),
		"status_code": resp.StatusCode,
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (s *HTTPSender) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	endpoint := s.baseURL + req.Path

	var httpReq *http.Request
	var err error
	if req.Method == http.MethodGet {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		httpReq.URL.RawQuery = req.Params.Encode()
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, req.Method, endpoint,
			strings.NewReader(req.Params.Encode()))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	httpReq.Header.Set("User-Agent", s.userAgent)
	if s.authKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.authKey)
	}
	return httpReq, nil
}
