package handlers

import (
	"net/http"

	"github.com/fxledger/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile returns the authenticated account
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	user, err := h.service.Profile(r.Context(), s)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, UserResponse{User: user})
}

// List returns every account
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserListResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	users, err := h.service.List(r.Context(), s)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, UserListResponse{Users: users})
}

// Get returns one account
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} UserResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, UserResponse{User: user})
}

// Update changes the profile of an account
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body services.UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), s, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, UserResponse{Message: "User updated successfully", User: user})
}

// Delete removes an account and its transactions
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := subject(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), s, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
