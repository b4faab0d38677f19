// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter enforces a per-client sliding window, used on the abuse
// magnets: public submissions and AI recommendations. State is
// in-process; with a single instance behind the proxy that is enough.
type RateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	done    chan struct{}
	sweepEv time.Duration
}

// NewRateLimiter allows limit requests per window per client and starts
// a sweeper that drops clients with no activity inside the window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
		sweepEv: 5 * time.Minute,
	}
	go rl.sweep()
	return rl
}

// Stop ends the sweeper goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.sweepEv)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.window)
			rl.mu.Lock()
			for key, stamps := range rl.hits {
				if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
					delete(rl.hits, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// allow records a hit for key and reports whether it stayed within the
// limit. Stamps outside the window are discarded as they age out.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	stamps := rl.hits[key]
	live := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	if len(live) >= rl.limit {
		rl.hits[key] = live
		return false
	}
	rl.hits[key] = append(live, now)
	return true
}

// Middleware rejects over-limit clients with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			jsonError(w, "too many requests, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the originating address: leftmost X-Forwarded-For
// entry, then X-Real-IP, then the bare RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
