package succession

import (
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
)

const (
	DefaultReadiness  = "Within1To2Years"
	DefaultRiskOfLoss = "Medium"
)

// Record is a one-to-one talent-planning annotation per hired application.
// An absent record means "no planning data yet", not an error.
type Record struct {
	ID                common.UUID `json:"id"`
	ApplicationID     common.UUID `json:"application_id"`
	CandidateName     string      `json:"candidate_name"`
	CurrentRole       string      `json:"current_role"`
	PotentialNextRole string      `json:"potential_next_role,omitempty"`
	Readiness         string      `json:"readiness"`
	RiskOfLoss        string      `json:"risk_of_loss"`
	DevelopmentNotes  string      `json:"development_notes,omitempty"`
	LastUpdated       time.Time   `json:"last_updated"`
}
