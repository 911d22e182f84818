package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// IncomeHandler provides cash sale endpoints.
type IncomeHandler struct {
	base    *BaseHandler
	service *income.Service
}

// NewIncomeHandler creates a new income handler.
func NewIncomeHandler(base *BaseHandler, service *income.Service) *IncomeHandler {
	return &IncomeHandler{base: base, service: service}
}

// RegisterRoutes registers cash sale endpoints.
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /incomes. Recording the sale and deducting stock happen
// in one transaction; the receipt number comes back on the created row.
func (h *IncomeHandler) Create(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	sale := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), sale); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, sale)
}

// List handles GET /incomes.
func (h *IncomeHandler) List(c *gin.Context) {
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

// Get handles GET /incomes/:id.
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, sale)
}

// Update handles PUT /incomes/:id.
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateIncomeRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(sale)
	if err := h.service.Update(c.Request.Context(), sale); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, sale)
}

// Delete handles DELETE /incomes/:id.
func (h *IncomeHandler) Delete(c *gin.Context) {
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
