package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(rate int, window time.Duration, clock *time.Time) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      func() time.Time { return *clock },
		stop:     make(chan struct{}),
	}
	return rl
}

func TestAllowRefillsAfterWindow(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &clock)

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("expected other visitors to have their own bucket")
	}

	clock = clock.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatal("expected tokens to refill after the window")
	}
}

func TestAllowDisabled(t *testing.T) {
	clock := time.Now()
	rl := newTestLimiter(0, time.Minute, &clock)
	for i := 0; i < 10; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatal("a zero rate disables limiting")
		}
	}
}

func TestEvictIdle(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &clock)
	rl.Allow("old")

	clock = clock.Add(90 * time.Second)
	rl.Allow("fresh")

	clock = clock.Add(45 * time.Second)
	rl.evictIdle()

	if got := rl.visitorCount(); got != 1 {
		t.Fatalf("expected 1 visitor after eviction, got %d", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, remote: "127.0.0.1:1234", want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": " 10.0.0.3 "}, remote: "127.0.0.1:1234", want: "10.0.0.3"},
		{name: "remote addr", remote: "192.168.1.5:5555", want: "192.168.1.5"},
		{name: "remote addr without port", remote: "192.168.1.6", want: "192.168.1.6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
