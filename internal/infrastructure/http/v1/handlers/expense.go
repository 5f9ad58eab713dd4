package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/expense"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves the append-only period expense ledger.
type ExpenseHandler struct {
	*BaseHandler
	expenses *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenses *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler: NewBaseHandler(),
		expenses:    expenses,
	}
}

// Add handles POST /periods/:id/expenses.
func (h *ExpenseHandler) Add(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.AddExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sectionID, ok := h.ParseOptionalID(c, "sectionId", req.SectionID)
	if !ok {
		return
	}

	e, err := h.expenses.Add(c.Request.Context(), req.ToInput(periodID, sectionID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// List handles GET /periods/:id/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ListExpensesRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := expense.ListFilter{
		PeriodID: periodID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if req.SectionID != "" {
		sectionID, ok := h.ParseID(c, "sectionId", req.SectionID)
		if !ok {
			return
		}
		filter.SectionID = &sectionID
	}
	if req.Category != "" {
		cat := expense.Category(req.Category)
		filter.Category = &cat
	}

	items, err := h.expenses.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	List(c, items)
}

// Totals handles GET /periods/:id/expenses/totals.
func (h *ExpenseHandler) Totals(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	total, err := h.expenses.TotalForPeriod(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	byCategory, err := h.expenses.TotalsByCategory(c.Request.Context(), periodID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"total": total, "byCategory": byCategory})
}
