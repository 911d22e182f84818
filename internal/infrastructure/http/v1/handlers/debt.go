package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// DebtHandler provides credit sale and repayment endpoints.
type DebtHandler struct {
	base    *BaseHandler
	service *debt.Service
}

// NewDebtHandler creates a new debt handler.
func NewDebtHandler(base *BaseHandler, service *debt.Service) *DebtHandler {
	return &DebtHandler{base: base, service: service}
}

// RegisterRoutes registers debt endpoints. Repayment routes that address a
// repayment directly live under /repayments.
func (h *DebtHandler) RegisterRoutes(debts, repayments *gin.RouterGroup) {
	debts.POST("", h.Create)
	debts.GET("", h.List)
	debts.GET("/:id", h.Get)
	debts.PUT("/:id", h.Update)
	debts.DELETE("/:id", h.Delete)
	debts.GET("/:id/repayments", h.ListRepayments)
	debts.POST("/:id/repayments", h.CreateRepayment)

	repayments.PUT("/:id", h.UpdateRepayment)
	repayments.DELETE("/:id", h.DeleteRepayment)
}

// Create handles POST /debts.
func (h *DebtHandler) Create(c *gin.Context) {
	var req dto.CreateDebtRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	d := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), d); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromDebt(d))
}

// List handles GET /debts.
func (h *DebtHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	resp := dto.NewListResponse(result)
	resp.Items = dto.FromDebts(result.Items)
	h.base.OK(c, resp)
}

// Get handles GET /debts/:id.
func (h *DebtHandler) Get(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromDebt(d))
}

// Update handles PUT /debts/:id.
func (h *DebtHandler) Update(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(d)
	if err := h.service.Update(c.Request.Context(), d); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.FromDebt(d))
}

// Delete handles DELETE /debts/:id.
func (h *DebtHandler) Delete(c *gin.Context) {
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

// ListRepayments handles GET /debts/:id/repayments.
func (h *DebtHandler) ListRepayments(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	reps, err := h.service.ListRepayments(c.Request.Context(), id)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, reps)
}

// CreateRepayment handles POST /debts/:id/repayments.
func (h *DebtHandler) CreateRepayment(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRepaymentRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	rep := &debt.Repayment{
		DebtID:      id,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
	}
	if err := h.service.CreateRepayment(c.Request.Context(), rep); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, rep)
}

// UpdateRepayment handles PUT /repayments/:id.
func (h *DebtHandler) UpdateRepayment(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRepaymentRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	rep := &debt.Repayment{
		ID:          id,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
	}
	if err := h.service.UpdateRepayment(c.Request.Context(), rep); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, rep)
}

// DeleteRepayment handles DELETE /repayments/:id.
func (h *DebtHandler) DeleteRepayment(c *gin.Context) {
	id, ok := h.base.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRepayment(c.Request.Context(), id); err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.NoContent(c)
}
