package http

import (
	"net/http"

	"github.com/projectalpha/alpha/pkg/httpx"
)

type VerifyHandler struct{}

// ServeHTTP confirms the presented session token is still valid. The
// authentication middleware has already verified it; all that is left is to
// echo the subject back.
//
//	@Summary		Verify the session token
//	@Tags			Authentication
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]any	"valid flag and account email"
//	@Failure		401	{object}	map[string]string
//	@Router			/api/auth/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := httpx.EmailFromContext(r.Context())

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"user":  email,
	})
}
