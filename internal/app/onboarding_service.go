package app

import (
	"context"
	"strings"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/onboarding"
)

type OnboardingService struct {
	repo         onboarding.Repository
	applications application.Repository
}

func NewOnboardingService(repo onboarding.Repository, applications application.Repository) *OnboardingService {
	return &OnboardingService{repo: repo, applications: applications}
}

// CreatePlan optionally links the plan to an application; the linked
// application must exist and be Hired. This is a business rule, not a
// storage-level constraint.
func (s *OnboardingService) CreatePlan(ctx context.Context, applicationID *common.UUID, candidateName string, startDate time.Time) (*onboarding.Plan, error) {
	if strings.TrimSpace(candidateName) == "" {
		return nil, common.NewValidationError("candidate name is required", map[string]string{"candidate_name": "candidate_name is required"})
	}
	if applicationID != nil {
		app, err := s.applications.GetByID(ctx, *applicationID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return nil, common.NewValidationError("invalid application", map[string]string{"application_id": "application does not exist"})
			}
			return nil, err
		}
		if app.Status != application.StatusHired {
			return nil, common.NewValidationError("application is not hired", map[string]string{"application_id": "onboarding requires a hired application"})
		}
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	return s.repo.CreatePlan(ctx, onboarding.Plan{
		ApplicationID: applicationID,
		CandidateName: strings.TrimSpace(candidateName),
		StartDate:     startDate,
	})
}

// GetPlan returns the plan with its tasks in presentation order.
func (s *OnboardingService) GetPlan(ctx context.Context, id common.UUID) (*onboarding.Plan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	onboarding.SortTasks(plan.Tasks)
	return plan, nil
}

func (s *OnboardingService) ListPlans(ctx context.Context, filter onboarding.ListFilter) ([]onboarding.Plan, int, error) {
	return s.repo.ListPlans(ctx, filter)
}

// ListMyPlans returns plans linked to the candidate's hired applications.
func (s *OnboardingService) ListMyPlans(ctx context.Context, candidateID common.UUID) ([]onboarding.Plan, error) {
	return s.repo.ListPlansByCandidate(ctx, candidateID)
}

func (s *OnboardingService) DeletePlan(ctx context.Context, id common.UUID) error {
	if _, err := s.repo.GetPlan(ctx, id); err != nil {
		return err
	}
	return s.repo.DeletePlan(ctx, id)
}

func (s *OnboardingService) AddTask(ctx context.Context, planID common.UUID, name, assignedTo string, dueDate *time.Time) (*onboarding.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.NewValidationError("task name is required", map[string]string{"name": "name is required"})
	}
	if _, err := s.repo.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.repo.AddTask(ctx, onboarding.Task{
		PlanID:     planID,
		Name:       strings.TrimSpace(name),
		AssignedTo: strings.TrimSpace(assignedTo),
		DueDate:    dueDate,
	})
}

type TaskUpdate struct {
	Name        *string
	AssignedTo  *string
	DueDate     *time.Time
	IsCompleted *bool
}

// UpdateTask applies a partial update. Toggling completion sets or clears the
// completion timestamp atomically with the flag.
func (s *OnboardingService) UpdateTask(ctx context.Context, taskID common.UUID, update TaskUpdate) error {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		task.Name = strings.TrimSpace(*update.Name)
	}
	if update.AssignedTo != nil {
		task.AssignedTo = strings.TrimSpace(*update.AssignedTo)
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.IsCompleted != nil {
		task.IsCompleted = *update.IsCompleted
		if task.IsCompleted {
			now := time.Now().UTC()
			task.CompletedOn = &now
		} else {
			task.CompletedOn = nil
		}
	}
	return s.repo.UpdateTask(ctx, *task)
}

func (s *OnboardingService) DeleteTask(ctx context.Context, taskID common.UUID) error {
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, taskID)
}
