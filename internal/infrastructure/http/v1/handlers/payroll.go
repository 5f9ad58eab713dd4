package handlers

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/payroll"
	"farmledger/internal/infrastructure/http/v1/dto"
)

// PayrollHandler serves salary assignment and advance endpoints.
type PayrollHandler struct {
	*BaseHandler
	payroll *payroll.Service
}

// NewPayrollHandler creates a new payroll handler.
func NewPayrollHandler(payrollSvc *payroll.Service) *PayrollHandler {
	return &PayrollHandler{
		BaseHandler: NewBaseHandler(),
		payroll:     payrollSvc,
	}
}

// Assign handles POST /periods/:id/salaries.
func (h *PayrollHandler) Assign(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignSalaryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.payroll.Assign(c.Request.Context(), req.ToInput(periodID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, a)
}

// Advance handles POST /periods/:id/salaries/advances.
func (h *PayrollHandler) Advance(c *gin.Context) {
	periodID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.SalaryAdvanceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	adv, err := h.payroll.Advance(c.Request.Context(), req.ToInput(periodID, h.ActorID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, adv)
}
