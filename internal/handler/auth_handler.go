package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/middleware"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/auth/register
// Creates a login account for any role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

// Login godoc
// POST /api/auth/login
// Validates email + password and returns a signed token with the user profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Logout godoc
// POST /api/auth/logout
// Revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.authService.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
