// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// securityHeaders goes on every response. The service only emits JSON,
// so the set is lean: no sniffing, no framing, a tight referrer, and no
// FLoC cohorts.
var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "SAMEORIGIN",
	"X-XSS-Protection":       "0", // legacy filter off, CSP territory
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "interest-cohort=()",
}

// SecureHeaders sets the baseline security headers before the handler runs.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range securityHeaders {
			w.Header().Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}
