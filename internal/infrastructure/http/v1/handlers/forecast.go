package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/forecast"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// ForecastHandler serves the sale-price assumption endpoints. The forecast
// and simulation reads live on the section handler.
type ForecastHandler struct {
	*BaseHandler
	forecasts *forecast.Service
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(forecasts *forecast.Service) *ForecastHandler {
	return &ForecastHandler{
		BaseHandler: NewBaseHandler(),
		forecasts:   forecasts,
	}
}

// SetPrice handles POST /forecast/prices.
func (h *ForecastHandler) SetPrice(c *gin.Context) {
	var req dto.SetPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	periodID, ok := h.ParseID(c, "periodId", req.PeriodID)
	if !ok {
		return
	}
	sectionID, ok := h.ParseOptionalID(c, "sectionId", req.SectionID)
	if !ok {
		return
	}

	price, err := h.forecasts.SetPrice(c.Request.Context(), req.ToInput(periodID, sectionID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, price)
}
