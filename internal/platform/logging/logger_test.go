package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).Named("cache").With("tier", "durable")

	logger.Debug("hidden")
	logger.Warn("durable cache get failed", "key", "leaderboard:c1", "error", errors.New("timeout"), "dangling")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	entry := lines[0]
	if entry["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["component"] != "cache" {
		t.Fatalf("unexpected component: %v", entry["component"])
	}
	if entry["tier"] != "durable" || entry["key"] != "leaderboard:c1" || entry["error"] != "timeout" {
		t.Fatalf("unexpected fields: %v", entry)
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", entry)
	}
}

func TestLogger_AttachesTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "leaderboard recomputed")
	logger.InfoContext(context.Background(), "no span")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["trace_id"] != traceID.String() || lines[0]["span_id"] != spanID.String() {
		t.Fatalf("expected trace fields, got %v", lines[0])
	}
	if _, ok := lines[1]["trace_id"]; ok {
		t.Fatalf("expected no trace fields without a span, got %v", lines[1])
	}
}

func TestLogger_NilAndDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(NewJSONTo(&buf, LevelInfo))
	t.Cleanup(func() { SetDefault(previous) })

	var logger *Logger
	logger.Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Fatalf("expected nil logger to write through default, got %q", buf.String())
	}

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected nop default after SetDefault(nil)")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}
