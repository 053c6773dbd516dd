package adaptor

import (
	"net/http"

	"user-api/internal/dto/request"
	"user-api/internal/usecase"
	"user-api/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	detail  bool
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, detail bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		detail:  detail,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "register", h.detail)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "register", h.detail)
		return
	}

	utils.ResponseCreated(w, "Registration successful", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, err, "login", h.detail)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "login", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.Refresh(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err, "refresh token", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Token refreshed successfully", resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentity(r.Context())

	if err := h.service.Logout(r.Context(), identity); err != nil {
		writeError(w, h.log, err, "logout", h.detail)
		return
	}

	utils.ResponseSuccess(w, "Logged out successfully", nil)
}
