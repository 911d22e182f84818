package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/reports"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/dto"
)

// ReportsHandler provides reporting endpoints.
type ReportsHandler struct {
	base    *BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{base: base, service: service}
}

// RegisterRoutes registers report endpoints.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/gain-loss", h.GainLoss)
	rg.GET("/deficiency-alerts", h.DeficiencyAlerts)
}

// GainLoss handles GET /reports/gain-loss.
func (h *ReportsHandler) GainLoss(c *gin.Context) {
	var query dto.GainLossQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	report, err := h.service.GainLoss(c.Request.Context(), query.StartDate, query.EndDate)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, report)
}

// DeficiencyAlerts handles GET /reports/deficiency-alerts.
func (h *ReportsHandler) DeficiencyAlerts(c *gin.Context) {
	alerts, err := h.service.DeficiencyAlerts(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, alerts)
}
