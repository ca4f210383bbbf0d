package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/onboarding"
	"github.com/monisha2608/HRMBackend/internal/http/middleware"
	"github.com/monisha2608/HRMBackend/internal/http/response"
)

type OnboardingHandler struct {
	plans *app.OnboardingService
}

func NewOnboardingHandler(plans *app.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{plans: plans}
}

// planView decorates a plan with its derived completion percentage.
type planView struct {
	onboarding.Plan
	Progress int `json:"progress"`
}

func toPlanView(plan onboarding.Plan) planView {
	return planView{Plan: plan, Progress: onboarding.Progress(plan.Tasks)}
}

type createPlanRequest struct {
	ApplicationID string `json:"application_id"`
	CandidateName string `json:"candidate_name"`
	StartDate     string `json:"start_date"`
}

func (h *OnboardingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var applicationID *common.UUID
	if strings.TrimSpace(req.ApplicationID) != "" {
		parsed, err := common.ParseUUID(req.ApplicationID)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid application id", map[string]string{"application_id": "invalid uuid"}))
			return
		}
		applicationID = &parsed
	}
	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid start date", map[string]string{"start_date": "expected YYYY-MM-DD"}))
			return
		}
		startDate = parsed
	}
	plan, err := h.plans.CreatePlan(r.Context(), applicationID, req.CandidateName, startDate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toPlanView(*plan))
}

func (h *OnboardingHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	plan, err := h.plans.GetPlan(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toPlanView(*plan))
}

func (h *OnboardingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1, 0)
	pageSize := queryInt(r, "page_size", 10, 100)
	plans, total, err := h.plans.ListPlans(r.Context(), onboarding.ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	views := make([]planView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, toPlanView(plan))
	}
	response.JSON(w, http.StatusOK, pagedResult{Page: page, PageSize: pageSize, Total: total, Items: views})
}

// Mine lists plans linked to the candidate's own hired applications.
func (h *OnboardingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	plans, err := h.plans.ListMyPlans(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	views := make([]planView, 0, len(plans))
	for _, plan := range plans {
		onboarding.SortTasks(plan.Tasks)
		views = append(views, toPlanView(plan))
	}
	response.JSON(w, http.StatusOK, views)
}

func (h *OnboardingHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.plans.DeletePlan(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

type taskRequest struct {
	Name       string  `json:"name"`
	AssignedTo string  `json:"assigned_to"`
	DueDate    *string `json:"due_date"`
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, common.NewValidationError("invalid due date", map[string]string{"due_date": "expected YYYY-MM-DD"})
	}
	return &parsed, nil
}

func (h *OnboardingHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	planID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		response.Error(w, err)
		return
	}
	task, err := h.plans.AddTask(r.Context(), planID, req.Name, req.AssignedTo, dueDate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, task)
}

type taskUpdateRequest struct {
	Name        *string `json:"name"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *OnboardingHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req taskUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	update := app.TaskUpdate{
		Name:        req.Name,
		AssignedTo:  req.AssignedTo,
		IsCompleted: req.IsCompleted,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			response.Error(w, err)
			return
		}
		update.DueDate = dueDate
	}
	if err := h.plans.UpdateTask(r.Context(), taskID, update); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

func (h *OnboardingHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.plans.DeleteTask(r.Context(), taskID); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
