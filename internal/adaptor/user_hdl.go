package adaptor

import (
	"net/http"

	"user-api/internal/dto/request"
	"user-api/internal/usecase"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type UserHandler struct {
	service usecase.UserService
	detail  bool
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, detail bool, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		detail:  detail,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err, "get profile", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "update profile", h.detail)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), identity, &req)
	if err != nil {
		writeError(w, h.log, err, "update profile", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

// ChangePassword handles POST /api/users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "change password", h.detail)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		writeError(w, h.log, err, "change password", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Password changed successfully", nil)
}

// VerifyEmail handles POST /api/users/verify-email
func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.VerifyEmail(r.Context(), userID); err != nil {
		writeError(w, h.log, err, "verify email", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Email verified successfully", nil)
}

// GetAllUsers handles GET /api/users?page=1&limit=10 (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, pageOK := utils.ParseQueryInt(query.Get("page"), defaultPage)
	limit, limitOK := utils.ParseQueryInt(query.Get("limit"), defaultLimit)
	if !pageOK || !limitOK {
		writeError(w, h.log, apperror.Validation("Invalid pagination parameters"), "get all users", h.detail)
		return
	}

	users, err := h.service.GetAllUsers(r.Context(), request.PaginatedRequest{Page: page, Limit: limit})
	if err != nil {
		writeError(w, h.log, err, "get all users", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUserByID handles GET /api/users/{id} (admin only)
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get user", h.detail)
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// CreateUser handles POST /api/users (admin only)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "create user", h.detail)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create user", h.detail)
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PUT /api/users/{id} (admin only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "update user", h.detail)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err, "update user", h.detail)
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	actor, _ := utils.GetIdentity(r.Context())
	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		writeError(w, h.log, err, "delete user", h.detail)
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

// DeactivateUser handles POST /api/users/{id}/deactivate (admin only)
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	actor, _ := utils.GetIdentity(r.Context())
	user, err := h.service.DeactivateUser(r.Context(), actor, id)
	if err != nil {
		writeError(w, h.log, err, "deactivate user", h.detail)
		return
	}

	utils.ResponseSuccess(w, "User deactivated successfully", user)
}

// ActivateUser handles POST /api/users/{id}/activate (admin only)
func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, err := h.service.ActivateUser(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "activate user", h.detail)
		return
	}

	utils.ResponseSuccess(w, "User activated successfully", user)
}

func (h *UserHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
