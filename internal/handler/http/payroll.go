package http

import (
	"net/http"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
)

type PayrollHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetWeeklyGross(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	bonusService   bonus.BonusService
}

func NewPayrollHandler(payrollService payroll.PayrollService, bonusService bonus.BonusService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		bonusService:   bonusService,
	}
}

// GetDashboard handles GET /payroll/dashboard
func (h *payrollHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetDashboard(r.Context(), sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklyGross handles GET /payroll/weekly-gross?week_start=
func (h *payrollHandlerImpl) GetWeeklyGross(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetWeeklyGross(r.Context(), sel.Week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Reconcile handles POST /payroll/reconcile
func (h *payrollHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.bonusService.Reconcile(r.Context(), sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Automatic bonuses reconciled", result)
}
