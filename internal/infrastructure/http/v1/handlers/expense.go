package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler provides expense endpoints.
type ExpenseHandler struct {
	base    *BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{base: base, service: service}
}

// RegisterRoutes registers expense endpoints.
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/total", h.Total)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.Created(c, e.ID)
}

// List handles GET /expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
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

// Total handles GET /expenses/total.
func (h *ExpenseHandler) Total(c *gin.Context) {
	start := c.Query("startDate")
	end := c.Query("endDate")

	total, err := h.service.TotalForPeriod(c.Request.Context(), start, end)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if start == "" {
		start = "1970-01-01"
	}
	if end == "" {
		end = types.Today()
	}
	h.base.OK(c, dto.ExpenseTotalResponse{StartDate: start, EndDate: end, Total: total})
}

// Get handles GET /expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, e)
}

// Update handles PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(e)
	if err := h.service.Update(c.Request.Context(), e); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, e)
}

// Delete handles DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
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
