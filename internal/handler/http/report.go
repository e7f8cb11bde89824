package http

import (
	"net/http"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/report"
	"github.com/Jimmy4745/lovable-dispatch/internal/handler/http/response"
)

type ReportHandler interface {
	ExportWeeklyGross(w http.ResponseWriter, r *http.Request)
	ExportStatement(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// ExportWeeklyGross handles GET /reports/weekly-gross.xlsx?week_start=
func (h *reportHandlerImpl) ExportWeeklyGross(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportWeeklyGross(r.Context(), sel.Week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Content)
}

// ExportStatement handles GET /reports/statement.pdf
func (h *reportHandlerImpl) ExportStatement(w http.ResponseWriter, r *http.Request) {
	sel, err := parsePeriodSelection(r, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportStatement(r.Context(), sel)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Content)
}
