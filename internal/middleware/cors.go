// Package middleware provides HTTP middleware for the apihub API.
package middleware

import "net/http"

// The API is consumed by arbitrary third-party frontends and feed readers,
// so the CORS surface is a fixed wide-open header set rather than an origin
// whitelist. Bearer tokens travel in the Authorization header, never in
// cookies, so the wildcard origin carries no credential exposure.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORS attaches the fixed CORS header set to every response and answers
// preflight OPTIONS requests with an empty 200 before any routing happens.
// Preflights therefore never reach the router, the auth middleware, or the
// store.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Content-Type", "application/json")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
