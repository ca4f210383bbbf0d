package job

import (
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type Job struct {
	ID             common.UUID `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Department     string      `json:"department,omitempty"`
	Location       string      `json:"location,omitempty"`
	EmploymentType string      `json:"employment_type,omitempty"`
	InternalOnly   bool        `json:"internal_only"`
	PostedByUserID common.UUID `json:"posted_by_user_id"`
	PostedOn       time.Time   `json:"posted_on"`
}
