package job

import (
	"context"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type SearchFilter struct {
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	Search(ctx context.Context, filter SearchFilter) ([]Job, int, error)
	CountApplications(ctx context.Context, jobID common.UUID) (int, error)
}
