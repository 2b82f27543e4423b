package middleware

import (
	"net/http"
)

// APIContentSecurityPolicy suits a JSON API that never serves active content.
const APIContentSecurityPolicy = "default-src 'none'; img-src 'self'; frame-ancestors 'none'"

// SecurityHeaders sets hardening headers on every response.
// hsts adds Strict-Transport-Security, csp is skipped when empty.
func SecurityHeaders(hsts bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			// uploaded player images may be embedded by the frontend origin
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				headers.Set("Cross-Origin-Resource-Policy", "cross-origin")
			}
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if hsts {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
