package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// hit sends one POST through the limited handler from the given address
// and returns the status code.
func hit(handler http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", nil)
	req.RemoteAddr = addr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func plainOK() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	handler := rl.Middleware(plainOK())

	for i := 0; i < 3; i++ {
		if code := hit(handler, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}

	// The fourth request in the window is rejected.
	if code := hit(handler, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", code)
	}
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	handler := rl.Middleware(plainOK())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		if code := hit(handler, addr); code != http.StatusOK {
			t.Errorf("client %s rejected on first request", addr)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr only", "192.168.1.10:5555", "", "", "192.168.1.10"},
		{"x-forwarded-for single", "10.0.0.1:80", "203.0.113.7", "", "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:80", "203.0.113.7, 10.0.0.2", "", "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:80", "", "203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
