package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/apihub/apihub/internal/auth"
	"github.com/apihub/apihub/internal/metrics"
	"github.com/apihub/apihub/internal/model"
)

// TokenStore resolves a bearer token to a user.
type TokenStore interface {
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
}

// AuthCache caches resolved identities keyed by a token digest.
type AuthCache interface {
	GetAuthContext(ctx context.Context, cacheKey string) (*model.AuthContext, error)
	SetAuthContext(ctx context.Context, cacheKey string, authCtx *model.AuthContext) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Store  TokenStore
	// Cache may be nil; every request then hits the store.
	Cache AuthCache
	// Metrics may be nil.
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests by the raw
// Authorization header value. The header is the token itself - no "Bearer "
// prefix is stripped, matching the credential format issued at registration.
//
// Identity resolution never surfaces a store failure to the client: a failed
// lookup is indistinguishable from a missing credential and yields 401, so
// protected handlers only ever run with a resolved identity.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			cacheKey := auth.QuickHash(token)

			if cfg.Cache != nil {
				authCtx, _ := cfg.Cache.GetAuthContext(r.Context(), cacheKey)
				if authCtx != nil {
					recorder.IncAuthCacheHit()
					ctx := auth.ContextWithAuth(r.Context(), authCtx)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				recorder.IncAuthCacheMiss()
			}

			user, err := cfg.Store.GetUserByToken(r.Context(), token)
			if err != nil {
				// No-match and store failure are treated identically:
				// identity stays unresolved.
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "unresolved_token"),
					slog.String("error", err.Error()),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			authCtx := &model.AuthContext{
				UserID:   user.ID,
				Username: user.Username,
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetAuthContext(r.Context(), cacheKey, authCtx)
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
