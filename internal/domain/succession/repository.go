package succession

import (
	"context"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type Repository interface {
	// Upsert inserts or replaces the record keyed by application id.
	Upsert(ctx context.Context, record Record) (*Record, error)
	GetByApplication(ctx context.Context, applicationID common.UUID) (*Record, error)
	ListByApplications(ctx context.Context, applicationIDs []common.UUID) (map[common.UUID]Record, error)
}
