package app

import (
	"context"
	"strings"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
)

type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if strings.TrimSpace(j.Title) == "" {
		return nil, common.NewValidationError("title is required", map[string]string{"title": "title is required"})
	}
	if strings.TrimSpace(j.Description) == "" {
		return nil, common.NewValidationError("description is required", map[string]string{"description": "description is required"})
	}
	return s.repo.Create(ctx, j)
}

func (s *JobService) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(j.Title) == "" {
		return nil, common.NewValidationError("title is required", map[string]string{"title": "title is required"})
	}
	if strings.TrimSpace(j.Description) == "" {
		return nil, common.NewValidationError("description is required", map[string]string{"description": "description is required"})
	}
	j.PostedByUserID = current.PostedByUserID
	j.PostedOn = current.PostedOn
	return s.repo.Update(ctx, j)
}

func (s *JobService) Delete(ctx context.Context, id common.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) List(ctx context.Context) ([]job.Job, error) {
	return s.repo.List(ctx)
}

func (s *JobService) Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, int, error) {
	return s.repo.Search(ctx, filter)
}

func (s *JobService) ApplicantsCount(ctx context.Context, jobID common.UUID) (int, error) {
	return s.repo.CountApplications(ctx, jobID)
}
