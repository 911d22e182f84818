package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/account"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// AuthHandler provides authentication endpoints.
type AuthHandler struct {
	base    *BaseHandler
	service *account.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *account.Service) *AuthHandler {
	return &AuthHandler{base: base, service: service}
}

// RegisterRoutes registers auth endpoints on the public and protected groups.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, user.ID)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), account.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.LoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresAt:   tokens.ExpiresAt,
		TokenType:   tokens.TokenType,
		User:        dto.FromUser(user),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := h.base.GetUserID(c)

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromUser(user))
}
