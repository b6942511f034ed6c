package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrChallengeID   = attribute.Key("leetstreak.challenge_id")
	attrUserID        = attribute.Key("leetstreak.user_id")
	attrInternalRoute = attribute.Key("leetstreak.internal_route")

	internalRoutePrefix = "/v1/internal/"
)

var apiTracer = otel.Tracer("leetstreak/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// Untraced request (e.g. /healthz): no standalone root spans for helpers.
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startRequestSpan tags the span with the ids the matched route carries.
func startRequestSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return startSpan(r.Context(), name, requestAttributes(r)...)
}

func requestAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if id := strings.TrimSpace(r.PathValue("challengeID")); id != "" {
		attrs = append(attrs, attrChallengeID.String(id))
	}
	if id := strings.TrimSpace(r.PathValue("userID")); id != "" {
		attrs = append(attrs, attrUserID.String(id))
	}
	if isInternalRoute(r.URL.Path) {
		attrs = append(attrs, attrInternalRoute.Bool(true))
	}
	return attrs
}

// Handlers and the job token gate get spans; response helpers ride on their caller's.
func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.") || name == "httpapi.RequireInternalJobToken"
}

// shouldTraceRequest leaves health checks and CORS preflights out of traces
// and request logs.
func shouldTraceRequest(r *http.Request) bool {
	if isPreflight(r) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.URL.Path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

func isInternalRoute(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), internalRoutePrefix)
}
