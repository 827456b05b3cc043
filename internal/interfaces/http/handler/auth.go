package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/velora/storefront/internal/application/auth"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
)

// AuthHandler proxies account operations to the commerce service
type AuthHandler struct {
	BaseHandler
	auth *appauth.Service
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *appauth.Service) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.GET("/verify-email/:userId/:code", h.VerifyEmail)
		auth.POST("/reset-password/:token", h.ResetPassword)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// Login signs the session in upstream
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	state, err := h.auth.Login(c.Request.Context(), middleware.GetSessionID(c),
		commerce.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{
		"name":  state.Name,
		"email": state.Email,
		"role":  state.Role,
	})
}

// Register creates an upstream account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), commerce.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, result.User)
}

// Logout drops the session's upstream credentials
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the signed-in account, or an anonymous marker
func (h *AuthHandler) Me(c *gin.Context) {
	state := middleware.GetAuthState(c)
	if state == nil {
		h.Success(c, gin.H{"authenticated": false})
		return
	}
	h.Success(c, gin.H{
		"authenticated": true,
		"name":          state.Name,
		"email":         state.Email,
		"role":          state.Role,
	})
}

// VerifyEmail confirms an account's email address
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	err := h.auth.VerifyEmail(c.Request.Context(), c.Param("userId"), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"verified": true})
}

// ResetPassword sets a new password using an emailed token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"reset": true})
}
