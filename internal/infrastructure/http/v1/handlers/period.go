package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/closing"
	"farmledger/internal/domain/period"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// PeriodHandler serves the period lifecycle endpoints.
type PeriodHandler struct {
	*BaseHandler
	periods *period.Service
	closing *closing.Service
}

// NewPeriodHandler creates a new period handler.
func NewPeriodHandler(periods *period.Service, closingSvc *closing.Service) *PeriodHandler {
	return &PeriodHandler{
		BaseHandler: NewBaseHandler(),
		periods:     periods,
		closing:     closingSvc,
	}
}

// Create handles POST /periods.
func (h *PeriodHandler) Create(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.periods.Create(c.Request.Context(), req.ToInput(h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

// Update handles PATCH /periods/:id.
func (h *PeriodHandler) Update(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.periods.Update(c.Request.Context(), periodID, req.ToInput(h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Get handles GET /periods/:id.
func (h *PeriodHandler) Get(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.periods.Get(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// List handles GET /periods.
func (h *PeriodHandler) List(c *gin.Context) {
	var req dto.ListPeriodsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.periods.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}

// Close handles POST /periods/:id/close.
func (h *PeriodHandler) Close(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.closing.ClosePeriod(c.Request.Context(), periodID, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}
