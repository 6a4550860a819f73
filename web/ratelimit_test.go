package web

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 3)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("Request %d within burst should be allowed", i)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("Request over burst should be rejected")
	}

	// Separate IPs get separate buckets
	if !rl.allow("10.0.0.2") {
		t.Error("Fresh IP should be allowed")
	}
}
