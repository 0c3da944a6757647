// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"
	"strconv"

	"carsales-service/internal/domain/auth"
	"carsales-service/internal/middleware"
	"carsales-service/internal/pkg/response"
	service "carsales-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ========== Session ==========

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id := middleware.MustGetIdentity(c)
	if err := h.authService.Logout(c.Request.Context(), id); err != nil {
		response.FromError(c, "logout failed", err)
		return
	}
	response.Success(c, http.StatusOK, "logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.MustGetIdentity(c)
	user, err := h.authService.Me(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, "failed to load profile", err)
		return
	}
	response.Success(c, http.StatusOK, "profile retrieved", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := middleware.MustGetIdentity(c)
	if err := h.authService.ChangePassword(c.Request.Context(), id.UserID, &req); err != nil {
		response.FromError(c, "failed to change password", err)
		return
	}
	response.Success(c, http.StatusOK, "password changed successfully", nil)
}

// ========== User Administration ==========

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register user", err)
		return
	}
	response.Success(c, http.StatusCreated, "user registered successfully", user)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	var filters auth.UserListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	users, err := h.authService.ListUsers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list users", err)
		return
	}
	response.Success(c, http.StatusOK, "users retrieved", users)
}

func (h *AuthHandler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AuthHandler) setActive(c *gin.Context, active bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID < 1 {
		response.ValidationError(c, "invalid user ID", err)
		return
	}

	user, err := h.authService.SetActive(c.Request.Context(), userID, active)
	if err != nil {
		response.FromError(c, "failed to update user", err)
		return
	}

	message := "user activated"
	if !active {
		message = "user deactivated"
	}
	response.Success(c, http.StatusOK, message, user)
}

func (h *AuthHandler) CleanupTokens(c *gin.Context) {
	removed, err := h.authService.CleanupTokens(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to clean up tokens", err)
		return
	}
	response.Success(c, http.StatusOK, "expired tokens removed", gin.H{"removed": removed})
}
