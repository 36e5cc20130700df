package handler

import (
	"net/http"
	"time"

	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/service"
	"github.com/taskdesk/taskdesk-go/internal/token"
)

// AuthHandler handles HTTP requests for signup, login and the profile.
type AuthHandler struct {
	service   *service.SessionService
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.SessionService, secret string, expiry time.Duration) *AuthHandler {
	return &AuthHandler{
		service:   svc,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// HandleSignup handles POST /api/v1/auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.SignupAsync(r.Context(), req).Wait(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.ToResponse())
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.LoginAsync(r.Context(), req).Wait(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	lastLogin, err := h.service.LastLogin(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tok, err := token.GenerateToken(user.Email, lastLogin, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{
		Token:     tok,
		User:      user.ToResponse(),
		LastLogin: lastLogin,
	})
}

// HandleLogout handles POST /api/v1/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Current(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	lastLogin, err := h.service.LastLogin(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SessionResponse{
		User:      user.ToResponse(),
		LastLogin: lastLogin,
	})
}

// HandleUpdateProfile handles PATCH /api/v1/profile requests.
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfileNameAsync(r.Context(), req.Name).Wait(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
