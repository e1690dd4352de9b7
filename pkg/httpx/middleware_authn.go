package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/pennywise-app/pennywise/pkg/slogx"
)

// AuthnMiddleware verifies the bearer access token and injects the subject
// into the request context. Missing, malformed, tampered and expired tokens
// all collapse to 401; clients are expected to treat any 401 as a dead
// session rather than retrying.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "token not provided")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.UserID())
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-style bearer rejection with the API's JSON error shape.
func writeBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+msg+`"`)
	NoCache(w)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":   "unauthorized",
		"message": msg,
	})
}
