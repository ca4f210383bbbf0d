package onboarding

import (
	"context"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	CreatePlan(ctx context.Context, plan Plan) (*Plan, error)
	GetPlan(ctx context.Context, id common.UUID) (*Plan, error)
	ListPlans(ctx context.Context, filter ListFilter) ([]Plan, int, error)
	ListPlansByCandidate(ctx context.Context, candidateID common.UUID) ([]Plan, error)
	// DeletePlan cascades to all owned tasks.
	DeletePlan(ctx context.Context, id common.UUID) error

	AddTask(ctx context.Context, task Task) (*Task, error)
	GetTask(ctx context.Context, id common.UUID) (*Task, error)
	UpdateTask(ctx context.Context, task Task) error
	DeleteTask(ctx context.Context, id common.UUID) error
}
