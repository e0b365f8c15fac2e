// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"elizatrader-service/internal/domain/admin"
	"elizatrader-service/internal/middleware"
	xerrors "elizatrader-service/internal/pkg/errors"
	"elizatrader-service/internal/pkg/response"
	service "elizatrader-service/internal/service/auth"

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

// Login authenticates the admin and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "identifier and password are required")
		return
	}
	req.IPAddress = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "identifier and password are required")
		case errors.Is(err, xerrors.ErrInvalidCredentials):
			// Identical message whether the identifier existed or not.
			response.Unauthorized(c, "invalid credentials")
		case errors.Is(err, xerrors.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, please try again later")
		case errors.Is(err, xerrors.ErrStorageUnavailable):
			response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable")
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout acknowledges the logout. Tokens are self-contained, so the server
// holds no session state to clear; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	if identifier, ok := middleware.GetIdentifier(c); ok {
		h.logger.Info("admin logged out", zap.String("identifier", identifier))
	}
	response.Success(c, http.StatusOK, "logged out", nil)
}

// GetMe returns the identity carried by the presented token.
func (h *AuthHandler) GetMe(c *gin.Context) {
	identifier, ok := middleware.GetIdentifier(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	role, _ := c.Get("role")
	response.Success(c, http.StatusOK, "", admin.UserInfo{
		Identifier: identifier,
		Role:       role.(string),
	})
}
