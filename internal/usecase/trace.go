package usecase

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrChallengeID = attribute.Key("leetstreak.challenge_id")
	attrUserID      = attribute.Key("leetstreak.user_id")
)

var usecaseTracer = otel.Tracer("leetstreak/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span when the caller is already traced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func challengeAttr(challengeID string) attribute.KeyValue {
	return attrChallengeID.String(strings.TrimSpace(challengeID))
}

func userAttr(userID string) attribute.KeyValue {
	return attrUserID.String(strings.TrimSpace(userID))
}

// markSpanError flags the span for failures the caller cannot fix by changing
// the request. Bad input and unknown ids leave the span status unset.
func markSpanError(span trace.Span, err error) {
	if err == nil || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
