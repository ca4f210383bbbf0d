package handlers

import (
	"net/http"
	"strings"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
	"github.com/monisha2608/HRMBackend/internal/http/middleware"
	"github.com/monisha2608/HRMBackend/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	InternalOnly   bool   `json:"internal_only"`
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.jobs.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	posting, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, posting)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Job{
		Title:          req.Title,
		Description:    req.Description,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		InternalOnly:   req.InternalOnly,
		PostedByUserID: userID,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), job.Job{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		InternalOnly:   req.InternalOnly,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

type pagedRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Status   string `json:"status"`
}

func (p *pagedRequest) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 10
	}
}

type pagedResult struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Items    any `json:"items"`
}

type jobSearchItem struct {
	job.Job
	ApplicantsCount int `json:"applicants_count"`
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req pagedRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	req.normalize()
	items, total, err := h.jobs.Search(r.Context(), job.SearchFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	enriched := make([]jobSearchItem, 0, len(items))
	for _, posting := range items {
		count, err := h.jobs.ApplicantsCount(r.Context(), posting.ID)
		if err != nil {
			response.Error(w, err)
			return
		}
		enriched = append(enriched, jobSearchItem{Job: posting, ApplicantsCount: count})
	}
	response.JSON(w, http.StatusOK, pagedResult{Page: req.Page, PageSize: req.PageSize, Total: total, Items: enriched})
}
