package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.SocialAuthUseCase
}

func NewAuthHandler(authUseCase *auth.SocialAuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// SignInRequest carries the provider-issued ID token.
type SignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// AuthResponse is the response structure
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Google handles POST /auth/google
func (h *AuthHandler) Google(c *gin.Context) {
	h.signIn(c, domain.ProviderGoogle)
}

// Apple handles POST /auth/apple
func (h *AuthHandler) Apple(c *gin.Context) {
	h.signIn(c, domain.ProviderApple)
}

func (h *AuthHandler) signIn(c *gin.Context, provider domain.Provider) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	deviceInfo := c.GetHeader("User-Agent")
	ipAddress := c.ClientIP()

	result, err := h.authUseCase.SignIn(c.Request.Context(), provider, req.IDToken, deviceInfo, ipAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Unix(),
		User:      result.User,
		IsNewUser: result.IsNewUser,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization token"})
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "logout failed"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out successfully"})
}

// Me returns the authenticated user id.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}
