package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/reports"
)

// ReportHandler serves the financial aggregation endpoints.
type ReportHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportsSvc *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(),
		reports:     reportsSvc,
	}
}

// Revenue handles GET /periods/:id/revenue. Only COMPLETE sales count.
func (h *ReportHandler) Revenue(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	revenue, err := h.reports.PeriodRevenue(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"revenue": revenue})
}

// PL handles GET /periods/:id/pl.
func (h *ReportHandler) PL(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	pl, err := h.reports.PeriodPL(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, pl)
}

// KPI handles GET /periods/:id/kpi.
func (h *ReportHandler) KPI(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	kpi, err := h.reports.PeriodKPI(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, kpi)
}
