package handlers

import (
	"net/http"

	mW "github.com/fxledger/backend/internal/middleware"
	"github.com/fxledger/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new account with name, email, phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 201 {object} services.AuthResponse "Registration successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 409 {object} services.ErrorResponse "Email or phone already in use"
// @Failure 500 {object} services.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	zap.L().Debug("Registration attempt", zap.String("remote_addr", r.RemoteAddr))

	var req services.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.AuthResponse "Login successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 401 {object} services.ErrorResponse "Invalid credentials"
// @Failure 429 {object} services.ErrorResponse "Too many failed attempts"
// @Failure 500 {object} services.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, resp)
}

// Logout handles user logout
// @Summary Logout user
// @Description Blacklist the current token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse "Logout successful"
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), mW.TokenFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}
