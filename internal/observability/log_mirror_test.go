package observability

import (
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-scorecard/internal/domain/match"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsProbeRequestLog(t *testing.T) {
	if !isProbeRequestLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health probe request log to be skipped")
	}
	if isProbeRequestLog("http request", []any{"path", "/v1/match/balls"}) {
		t.Fatalf("did not expect scoring request log to be skipped")
	}
	if isProbeRequestLog("wicket recorded", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non request log to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"match_id", "m-1", "runs", 4, "error", errors.New("boom"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "m-1" {
		t.Fatalf("unexpected match_id attribute")
	}
	if attrs[1].Key != "runs" || attrs[1].Value.AsInt64() != 4 {
		t.Fatalf("unexpected runs attribute")
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %s", attrs[2].Value.AsString())
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestLogValue(t *testing.T) {
	if v := logValue(match.RateModeDisplayOvers, 0); v.AsString() != "display_overs" {
		t.Fatalf("expected string kinds to render as string, got %v", v)
	}
	v := logValue(map[string]any{"score": 24, "all_out": false}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected map value with 2 items, got %v", v)
	}
	if got := severityOf(zapcore.WarnLevel); got != otellog.SeverityWarn {
		t.Fatalf("unexpected severity: %v", got)
	}
}
