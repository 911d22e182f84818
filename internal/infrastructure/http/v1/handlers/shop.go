package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/shop"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// ShopHandler provides shop profile endpoints.
type ShopHandler struct {
	base    *BaseHandler
	service *shop.Service
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(base *BaseHandler, service *shop.Service) *ShopHandler {
	return &ShopHandler{base: base, service: service}
}

// RegisterRoutes registers shop profile endpoints.
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Save)
}

// Get handles GET /shop/profile.
func (h *ShopHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, profile)
}

// Save handles PUT /shop/profile.
func (h *ShopHandler) Save(c *gin.Context) {
	var req dto.SaveProfileRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	profile := req.ToEntity()
	if err := h.service.Save(c.Request.Context(), profile); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, profile)
}
