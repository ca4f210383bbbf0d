package handlers

import (
	"net/http"
	"strings"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/http/middleware"
	"github.com/monisha2608/HRMBackend/internal/http/response"
)

// multipart form parse ceiling; anything larger spills to temp files.
const submitFormMemory = 1 << 20

type ApplicationHandler struct {
	applications *app.ApplicationService
}

func NewApplicationHandler(applications *app.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Submit accepts the public multipart application form. Identity is optional:
// a logged-in candidate gets linked to the application, a guest does not.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(submitFormMemory); err != nil {
		response.Error(w, common.NewValidationError("invalid multipart form", map[string]string{"body": err.Error()}))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	jobID, err := common.ParseUUID(r.FormValue("job_id"))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid job id", map[string]string{"job_id": "invalid uuid"}))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		response.Error(w, common.NewValidationError("resume file is required", map[string]string{"resume": "resume is required"}))
		return
	}
	defer file.Close()

	req := app.SubmitRequest{
		JobID:          jobID,
		FullName:       r.FormValue("full_name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		CoverLetter:    r.FormValue("cover_letter"),
		IsInternal:     strings.EqualFold(r.FormValue("is_internal"), "true"),
		EmployeeNumber: r.FormValue("employee_number"),
		Resume:         file,
		ResumeFileName: header.Filename,
		ResumeSize:     header.Size,
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		req.CandidateUserID = userID
	}

	created, err := h.applications.Submit(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// Mine lists the authenticated candidate's own applications.
func (h *ApplicationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	page := queryInt(r, "page", 1, 0)
	pageSize := queryInt(r, "page_size", 10, 100)
	items, total, err := h.applications.ListByCandidate(r.Context(), userID, application.ListFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, pagedResult{Page: page, PageSize: pageSize, Total: total, Items: items})
}

// ListByJob returns the paged applications of one job, newest first by
// default, optionally filtered by status and free-text search.
func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req pagedRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	req.normalize()
	filter := application.ListFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}
	if req.Status != "" {
		status, ok := application.ParseStatus(req.Status)
		if !ok {
			response.Error(w, common.NewValidationError("invalid status filter", map[string]string{"status": "unknown status"}))
			return
		}
		filter.Status = &status
	}
	items, total, err := h.applications.ListByJob(r.Context(), jobID, filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, pagedResult{Page: req.Page, PageSize: req.PageSize, Total: total, Items: items})
}

type statusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.SetStatus(r.Context(), id, req.Status, actorID, req.Note); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

type noteRequest struct {
	Body string `json:"body"`
}

func (h *ApplicationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	authorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.AddNote(r.Context(), id, authorID, req.Body); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (h *ApplicationHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	entries, err := h.applications.History(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}

func (h *ApplicationHandler) Notes(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	notes, err := h.applications.Notes(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, notes)
}
