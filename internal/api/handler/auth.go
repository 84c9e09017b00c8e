package handler

import (
	"encoding/json"
	"net/http"

	"github.com/texan-rex/diner-service/internal/api"
	"github.com/texan-rex/diner-service/internal/middleware"
	"github.com/texan-rex/diner-service/internal/models"
	"github.com/texan-rex/diner-service/internal/service"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	token, user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusCreated, api.Payload{
		"message": "account created",
		"token":   token,
		"user":    user,
	})
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, api.Validation("invalid request body"))
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"token": token,
		"user":  user,
	})
}

// HandleMe handles GET /auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, api.Validation("method not allowed"))
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.WriteError(w, api.Authentication("not authenticated"))
		return
	}

	user, bonusPct, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteSuccess(w, http.StatusOK, api.Payload{
		"user":             user,
		"bonus_percentage": bonusPct,
	})
}
