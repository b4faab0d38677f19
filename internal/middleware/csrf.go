package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "dd_csrf"

	// CSRFHeaderName is the header the admin front-end sends the token in.
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRF implements double-submit cookie protection for the admin API. A
// random token is minted into a front-end-readable cookie on any request
// that arrives without one; mutating requests must echo the cookie's
// value in the X-CSRF-Token header or they are rejected with 403.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := GetCSRFToken(r)
		if token == "" {
			minted, err := mintCSRFToken()
			if err != nil {
				jsonError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			token = minted
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false, // the front-end must read it to set the header
				SameSite: http.SameSiteStrictMode,
			})
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(token), []byte(header)) != 1 {
			jsonError(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetCSRFToken returns the CSRF token from the request cookie, or "".
func GetCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func mintCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
