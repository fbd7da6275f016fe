package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/projectalpha/alpha/pkg/jwtx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

// AuthnMiddleware is the authentication gate every protected route passes
// through. It extracts the bearer token, verifies it, and injects the
// resolved subject into the request context. It never touches the database;
// the token alone carries the subject. Downstream handlers must not
// re-verify.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "Not authenticated")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					log.Info("rejected expired token")
					writeBearerError(w, "Token expired")
					return
				}
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style unauthorized response with the service's detail body.
func writeBearerError(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteDetail(w, http.StatusUnauthorized, detail)
}
