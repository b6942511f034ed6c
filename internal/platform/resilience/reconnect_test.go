package resilience

import (
	"testing"
	"time"
)

func TestReconnectPolicy_Delay(t *testing.T) {
	p := DefaultReconnectPolicy()

	tests := []struct {
		failed int
		want   time.Duration
	}{
		{failed: 0, want: 0},
		{failed: 1, want: 500 * time.Millisecond},
		{failed: 2, want: time.Second},
		{failed: 4, want: 2 * time.Second},
		{failed: 10, want: 2 * time.Second},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.failed); got != tt.want {
			t.Fatalf("Delay(%d) = %s, want %s", tt.failed, got, tt.want)
		}
	}
}

func TestReconnectPolicy_Exhausted(t *testing.T) {
	p := NormalizeReconnectPolicy(ReconnectPolicy{})

	if p.Exhausted(2) {
		t.Fatalf("expected 2 failures to leave attempts")
	}
	if !p.Exhausted(3) {
		t.Fatalf("expected 3 failures to exhaust the policy")
	}
}
