package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/incident"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// IncidentHandler serves the technical incident endpoints.
type IncidentHandler struct {
	*BaseHandler
	incidents *incident.Service
}

// NewIncidentHandler creates a new incident handler.
func NewIncidentHandler(incidents *incident.Service) *IncidentHandler {
	return &IncidentHandler{
		BaseHandler: NewBaseHandler(),
		incidents:   incidents,
	}
}

// Report handles POST /incidents.
func (h *IncidentHandler) Report(c *gin.Context) {
	var req dto.ReportIncidentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sectionID, ok := h.ParseID(c, "sectionId", req.SectionID)
	if !ok {
		return
	}
	periodID, ok := h.ParseID(c, "periodId", req.PeriodID)
	if !ok {
		return
	}

	inc, err := h.incidents.Report(c.Request.Context(), req.ToInput(sectionID, periodID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, inc)
}

// Resolve handles POST /incidents/:id/resolve. A repair cost is required for
// incidents flagged requiresExpense and lands in the period ledger as an
// ASSET_REPAIR line.
func (h *IncidentHandler) Resolve(c *gin.Context) {
	incidentID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ResolveIncidentRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	inc, err := h.incidents.Resolve(c.Request.Context(), incidentID, req.RepairCost, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inc)
}

// ListByPeriod handles GET /periods/:id/incidents.
func (h *IncidentHandler) ListByPeriod(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	items, err := h.incidents.ListByPeriod(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}
