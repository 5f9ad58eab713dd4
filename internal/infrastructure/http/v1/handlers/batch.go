package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/closing"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/reports"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// BatchHandler serves the batch lifecycle and daily ledger endpoints.
type BatchHandler struct {
	*BaseHandler
	batches  *batch.Service
	balances *dailybalance.Service
	closing  *closing.Service
	reports  *reports.Service
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(
	batches *batch.Service,
	balances *dailybalance.Service,
	closingSvc *closing.Service,
	reportsSvc *reports.Service,
) *BatchHandler {
	return &BatchHandler{
		BaseHandler: NewBaseHandler(),
		batches:     batches,
		balances:    balances,
		closing:     closingSvc,
		reports:     reportsSvc,
	}
}

// Create handles POST /batches.
func (h *BatchHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sectionID, ok := h.ParseID(c, "sectionId", req.SectionID)
	if !ok {
		return
	}

	b, err := h.batches.Create(c.Request.Context(), req.ToInput(sectionID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, b)
}

// Get handles GET /batches/:id.
func (h *BatchHandler) Get(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	b, err := h.batches.Get(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}

// Close handles POST /batches/:id/close.
func (h *BatchHandler) Close(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.CloseBatchRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	b, err := h.closing.CloseBatch(c.Request.Context(), batchID, req.EndedAt, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}

// Balances handles GET /batches/:id/balances.
func (h *BatchHandler) Balances(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	items, err := h.balances.ListForBatch(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}

// DailyReport handles POST /batches/:id/daily-report.
func (h *BatchHandler) DailyReport(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.DailyReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.balances.ApplyDailyReport(c.Request.Context(), req.ToInput(batchID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rec)
}

// Summary handles GET /batches/:id/summary.
func (h *BatchHandler) Summary(c *gin.Context) {
	batchID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reports.BatchSummary(c.Request.Context(), batchID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
