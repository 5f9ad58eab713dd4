package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/chickout"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// ChickOutHandler serves the two-phase sale event endpoints.
type ChickOutHandler struct {
	*BaseHandler
	chickOuts *chickout.Service
}

// NewChickOutHandler creates a new chick-out handler.
func NewChickOutHandler(chickOuts *chickout.Service) *ChickOutHandler {
	return &ChickOutHandler{
		BaseHandler: NewBaseHandler(),
		chickOuts:   chickOuts,
	}
}

// Create handles POST /chick-outs. The record starts INCOMPLETE: the count
// leaves the farm now, the money facts arrive later via Complete.
func (h *ChickOutHandler) Create(c *gin.Context) {
	var req dto.CreateChickOutRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sectionID, ok := h.ParseID(c, "sectionId", req.SectionID)
	if !ok {
		return
	}

	out, err := h.chickOuts.Create(c.Request.Context(), req.ToInput(sectionID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, out)
}

// Complete handles POST /chick-outs/:id/complete.
func (h *ChickOutHandler) Complete(c *gin.Context) {
	chickOutID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.CompleteChickOutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	out, err := h.chickOuts.Complete(c.Request.Context(), chickOutID, req.ToInput(h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, out)
}

// Get handles GET /chick-outs/:id.
func (h *ChickOutHandler) Get(c *gin.Context) {
	chickOutID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	out, err := h.chickOuts.Get(c.Request.Context(), chickOutID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, out)
}

// ListByBatch handles GET /batches/:id/chick-outs.
func (h *ChickOutHandler) ListByBatch(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	items, err := h.chickOuts.ListByBatch(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}
