package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler provides purchase lot endpoints.
type PurchaseHandler struct {
	base    *BaseHandler
	service *inventory.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *inventory.Service) *PurchaseHandler {
	return &PurchaseHandler{base: base, service: service}
}

// RegisterRoutes registers purchase endpoints.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	lot := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), lot); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, lot.ID)
}

// List handles GET /purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.NewListResponse(result))
}

// Get handles GET /purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	lot, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, lot)
}

// Update handles PUT /purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePurchaseRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	lot, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(lot)
	if err := h.service.Update(c.Request.Context(), lot); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, lot)
}

// Delete handles DELETE /purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}
