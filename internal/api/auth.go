package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/bamboorat/internal/auth"
)

// AuthHandler handles identity endpoints.
type AuthHandler struct {
	Auth *auth.Service
}

type signInResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

// Anonymous handles POST /api/auth/anonymous.
func (h *AuthHandler) Anonymous(w http.ResponseWriter, r *http.Request) {
	id, token, err := h.Auth.SignInAnonymously()
	if err != nil {
		slog.Error("failed to sign in anonymously", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("anonymous identity issued", "uid", id.UID, "remote", r.RemoteAddr)
	jsonResponse(w, http.StatusOK, signInResponse{Token: token, UID: id.UID})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"uid": id.UID})
}
