package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

type LoginHandler struct {
	AuthGate *service.AuthGate
}

// ServeHTTP godoc
//
//	@Summary		Admin login
//	@Description	Exchanges the admin credential for a bearer token used by the /admin endpoints.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		intakesdk.LoginRequest	true	"Admin credential"
//	@Success		200		{object}	intakesdk.LoginResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"missing username or password"
//	@Failure		401		{object}	httpx.ErrorResponse	"invalid credentials"
//	@Router			/admin/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req intakesdk.LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, msgMissingLogin)
		return
	}

	tok, err := h.AuthGate.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("admin login rejected")
			httpx.WriteError(w, http.StatusUnauthorized, msgInvalidLogin)
			return
		}
		log.Error("admin login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	log.Info("admin login")
	httpx.WriteJSON(w, http.StatusOK, intakesdk.LoginResponse{
		AccessToken: tok.Value,
		TokenType:   "bearer",
		ExpiresIn:   int(tok.ExpiresIn.Seconds()),
		Message:     msgLoginOK,
	})
}
