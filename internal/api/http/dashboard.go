package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/pkg/httpx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

type DashboardHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user's dashboard payload.
//
//	@Summary		Dashboard
//	@Tags			Authentication
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]any	"public user view and greeting"
//	@Failure		401	{object}	map[string]string
//	@Failure		404	{object}	map[string]string	"Account deleted since the token was issued"
//	@Failure		500	{object}	map[string]string
//	@Router			/api/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := httpx.EmailFromContext(ctx)

	user, err := h.UserService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteDetail(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("dashboard lookup failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user":    userView{Name: user.Name, Email: user.Email},
		"message": fmt.Sprintf("Welcome to your dashboard, %s!", user.Name),
	})
}
