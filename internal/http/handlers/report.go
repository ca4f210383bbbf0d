package handlers

import (
	"net/http"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/http/response"
)

type ReportHandler struct {
	reports *app.ReportService
}

func NewReportHandler(reports *app.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, summary)
}

// Export streams the applications CSV, scoped to one job when job_id is set.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var jobID *common.UUID
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		parsed, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid job id", map[string]string{"job_id": "invalid uuid"}))
			return
		}
		jobID = &parsed
	}
	csv, fileName, err := h.reports.ExportCSV(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
