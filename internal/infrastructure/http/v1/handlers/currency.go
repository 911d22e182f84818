package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/currency"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// CurrencyHandler provides currency endpoints.
type CurrencyHandler struct {
	base    *BaseHandler
	service *currency.Service
}

// NewCurrencyHandler creates a new currency handler.
func NewCurrencyHandler(base *BaseHandler, service *currency.Service) *CurrencyHandler {
	return &CurrencyHandler{base: base, service: service}
}

// RegisterRoutes registers currency endpoints.
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/convert", h.Convert)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /currencies.
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	cur := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), cur); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, cur.ID)
}

// List handles GET /currencies.
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.service.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, currencies)
}

// Convert handles GET /currencies/convert.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var query dto.ConvertQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	converted, err := h.service.Convert(c.Request.Context(), query.Amount, query.From, query.To)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.ConvertResponse{
		Amount:    query.Amount,
		From:      query.From,
		To:        query.To,
		Converted: converted,
	})
}

// Get handles GET /currencies/:id.
func (h *CurrencyHandler) Get(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cur, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, cur)
}

// Update handles PUT /currencies/:id.
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCurrencyRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	cur, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(cur)
	if err := h.service.Update(c.Request.Context(), cur); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, cur)
}

// Delete handles DELETE /currencies/:id.
func (h *CurrencyHandler) Delete(c *gin.Context) {
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
