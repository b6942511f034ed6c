package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.GetLeaderboard", want: true},
		{name: "job token gate", in: "httpapi.RequireInternalJobToken", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "cors span", in: "httpapi.CORS", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRequestAttributes(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		values map[string]string
		want   map[attribute.Key]attribute.Value
	}{
		{
			name:   "member progress",
			path:   "/v1/challenges/c-blind75/members/u-alice/progress",
			values: map[string]string{"challengeID": "c-blind75", "userID": " u-alice "},
			want: map[attribute.Key]attribute.Value{
				attrChallengeID: attribute.StringValue("c-blind75"),
				attrUserID:      attribute.StringValue("u-alice"),
			},
		},
		{
			name:   "internal result write",
			path:   "/v1/internal/challenges/c-daily/results",
			values: map[string]string{"challengeID": "c-daily"},
			want: map[attribute.Key]attribute.Value{
				attrChallengeID:   attribute.StringValue("c-daily"),
				attrInternalRoute: attribute.BoolValue(true),
			},
		},
		{
			name: "internal warm has no ids",
			path: "/v1/internal/leaderboards/warm",
			want: map[attribute.Key]attribute.Value{
				attrInternalRoute: attribute.BoolValue(true),
			},
		},
		{
			name: "health",
			path: "/healthz",
			want: map[attribute.Key]attribute.Value{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for key, value := range tt.values {
				req.SetPathValue(key, value)
			}

			got := requestAttributes(req)
			if len(got) != len(tt.want) {
				t.Fatalf("requestAttributes(%s)=%v want=%v", tt.path, got, tt.want)
			}
			for _, kv := range got {
				want, ok := tt.want[kv.Key]
				if !ok || want != kv.Value {
					t.Fatalf("unexpected attribute %s=%v for %s", kv.Key, kv.Value.Emit(), tt.path)
				}
			}
		})
	}
}
