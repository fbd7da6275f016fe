package httpx

import "context"

type ctxKey string

const (
	// CtxKeyEmail holds the authenticated subject (the user's email).
	CtxKeyEmail ctxKey = "email"
	// CtxKeyClaims holds the full verified token claims.
	CtxKeyClaims ctxKey = "claims"
)

// EmailFromContext returns the authenticated subject injected by
// AuthnMiddleware, or "" when the request did not pass the gate.
func EmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}
