package application

import (
	"context"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type ListFilter struct {
	Status *Status
	Search string
	Oldest bool
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	// UpdateStatus persists the new status and the history entry in one
	// transaction: the history write is authoritative, so both succeed or
	// the whole operation fails.
	UpdateStatus(ctx context.Context, id common.UUID, status Status, entry StatusHistoryEntry) error
	SetScore(ctx context.Context, id common.UUID, score int, reason string) error
	ListByJob(ctx context.Context, jobID common.UUID, filter ListFilter) ([]Application, int, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID, filter ListFilter) ([]Application, int, error)
	ListAll(ctx context.Context) ([]Application, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	CountSince(ctx context.Context, days int) (map[string]int, error)

	AddHistory(ctx context.Context, entry StatusHistoryEntry) error
	ListHistory(ctx context.Context, applicationID common.UUID) ([]StatusHistoryEntry, error)

	AddNote(ctx context.Context, note Note) error
	ListNotes(ctx context.Context, applicationID common.UUID) ([]Note, error)
}
