package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/section"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// SectionHandler serves the section endpoints, including the section
// forecast views.
type SectionHandler struct {
	*BaseHandler
	sections  *section.Service
	forecasts *forecast.Service
}

// NewSectionHandler creates a new section handler.
func NewSectionHandler(sections *section.Service, forecasts *forecast.Service) *SectionHandler {
	return &SectionHandler{
		BaseHandler: NewBaseHandler(),
		sections:    sections,
		forecasts:   forecasts,
	}
}

// Create handles POST /sections.
func (h *SectionHandler) Create(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.sections.Create(c.Request.Context(), req.Name, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s)
}

// Get handles GET /sections/:id.
func (h *SectionHandler) Get(c *gin.Context) {
	sectionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	s, err := h.sections.Get(c.Request.Context(), sectionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// List handles GET /sections.
func (h *SectionHandler) List(c *gin.Context) {
	items, err := h.sections.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}

// LinkPeriod handles POST /sections/:id/link-period.
func (h *SectionHandler) LinkPeriod(c *gin.Context) {
	sectionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.LinkPeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	periodID, ok := h.ParseID(c, "periodId", req.PeriodID)
	if !ok {
		return
	}

	s, err := h.sections.LinkPeriod(c.Request.Context(), sectionID, periodID, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// Forecast handles GET /sections/:id/forecast.
func (h *SectionHandler) Forecast(c *gin.Context) {
	sectionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	fc, err := h.forecasts.SectionForecast(c.Request.Context(), sectionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, fc)
}

// SimulateSale handles POST /sections/:id/simulate-sale.
func (h *SectionHandler) SimulateSale(c *gin.Context) {
	sectionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.SimulateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sim, err := h.forecasts.SimulatePartialSale(c.Request.Context(), sectionID, req.SoldChicks)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sim)
}
