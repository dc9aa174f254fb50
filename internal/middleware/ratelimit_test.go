package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RateLimit(2, time.Minute)(ok)

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/weeks/w1/leaderboard", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		if got := call("203.0.113.7"); got != want {
			t.Fatalf("request %d: status = %d, want %d", i+1, got, want)
		}
	}

	if got := call("198.51.100.2"); got != http.StatusNoContent {
		t.Errorf("other client status = %d, want %d", got, http.StatusNoContent)
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := &RateLimiter{
		requests: map[string][]time.Time{
			"ip": {time.Now().Add(-2 * time.Minute), time.Now().Add(-90 * time.Second)},
		},
		limit:  2,
		window: time.Minute,
	}

	if !rl.Allow("ip") {
		t.Fatal("requests outside the window still counted")
	}
	if got := len(rl.requests["ip"]); got != 1 {
		t.Errorf("tracked = %d, want 1", got)
	}

	rl.cleanup()
	if _, ok := rl.requests["ip"]; !ok {
		t.Error("cleanup dropped an active client")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1234", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 1.2.3.4 "}, "9.9.9.9:1234", "1.2.3.4"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("ip = %q, want %q", got, tt.want)
			}
		})
	}
}
