package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/pkg/httpx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

type LoginHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// userView is the public shape of an account. The password hash never
// leaves the service layer.
type userView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServeHTTP authenticates a user and issues a session token.
//
//	@Summary		Log in
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	map[string]string	"Malformed body"
//	@Failure		401		{object}	map[string]string	"Invalid email or password"
//	@Failure		500		{object}	map[string]string
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteDetail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.TokenService.Issue(user.Email)
	if err != nil {
		log.Error("token issue failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  userView{Name: user.Name, Email: user.Email},
	})
}
