package handlers

import (
	"net/http"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/http/response"
)

type SuccessionHandler struct {
	succession *app.SuccessionService
}

func NewSuccessionHandler(succession *app.SuccessionService) *SuccessionHandler {
	return &SuccessionHandler{succession: succession}
}

func (h *SuccessionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.succession.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}

type saveRecordRequest struct {
	ApplicationID     string `json:"application_id"`
	PotentialNextRole string `json:"potential_next_role"`
	Readiness         string `json:"readiness"`
	RiskOfLoss        string `json:"risk_of_loss"`
	Notes             string `json:"notes"`
}

func (h *SuccessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := common.ParseUUID(req.ApplicationID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application id", map[string]string{"application_id": "invalid uuid"}))
		return
	}
	record, err := h.succession.Save(r.Context(), app.SaveRecordRequest{
		ApplicationID:     applicationID,
		PotentialNextRole: req.PotentialNextRole,
		Readiness:         req.Readiness,
		RiskOfLoss:        req.RiskOfLoss,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, record)
}
