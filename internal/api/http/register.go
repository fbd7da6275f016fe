package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/pkg/httpx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account details; username is optional"
//	@Success		201		{object}	map[string]string
//	@Failure		400		{object}	map[string]string	"Malformed or incomplete body"
//	@Failure		409		{object}	map[string]string	"Email already exists"
//	@Failure		500		{object}	map[string]string
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	switch {
	case req.Name == "":
		httpx.WriteDetail(w, http.StatusBadRequest, "Name is required")
		return
	case !validEmail(req.Email):
		httpx.WriteDetail(w, http.StatusBadRequest, "Invalid email address")
		return
	case req.Password == "":
		httpx.WriteDetail(w, http.StatusBadRequest, "Password is required")
		return
	}

	_, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteDetail(w, http.StatusConflict, "Email already exists")
			return
		}
		log.Error("registration failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// validEmail applies a light sanity check; real validation happens when the
// address is used. Anything with a local part, an @ and a dotted domain passes.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(email, " \t")
}
