package application

import (
	"strings"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
)

type Status string

const (
	StatusApplied            Status = "Applied"
	StatusUnderReview        Status = "UnderReview"
	StatusShortlisted        Status = "Shortlisted"
	StatusRejected           Status = "Rejected"
	StatusInterviewScheduled Status = "InterviewScheduled"
	StatusOffered            Status = "Offered"
	StatusHired              Status = "Hired"
)

// Statuses is the closed set of application statuses in workflow order.
var Statuses = []Status{
	StatusApplied,
	StatusUnderReview,
	StatusShortlisted,
	StatusRejected,
	StatusInterviewScheduled,
	StatusOffered,
	StatusHired,
}

// ParseStatus resolves a label against the closed enumeration,
// case-insensitively. Unknown labels are rejected, never defaulted.
func ParseStatus(label string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, status := range Statuses {
		if strings.ToLower(string(status)) == normalized {
			return status, true
		}
	}
	return "", false
}

type Application struct {
	ID              common.UUID `json:"id"`
	JobID           common.UUID `json:"job_id"`
	CandidateUserID common.UUID `json:"candidate_user_id,omitempty"`

	ApplicantFullName string `json:"applicant_full_name"`
	ApplicantEmail    string `json:"applicant_email"`
	ApplicantPhone    string `json:"applicant_phone,omitempty"`

	IsInternal     bool   `json:"is_internal"`
	EmployeeNumber string `json:"employee_number,omitempty"`

	ResumeURL   string `json:"resume_url,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`

	Status          Status  `json:"status"`
	Score           *int    `json:"score,omitempty"`
	ShortlistReason *string `json:"shortlist_reason,omitempty"`

	AppliedOn time.Time `json:"applied_on"`
}

// StatusHistoryEntry is an append-only audit record of one transition.
// ChangedByUserID is empty for system-triggered transitions.
type StatusHistoryEntry struct {
	ID              common.UUID `json:"id"`
	ApplicationID   common.UUID `json:"application_id"`
	OldStatus       string      `json:"old_status"`
	NewStatus       string      `json:"new_status"`
	Note            string      `json:"note,omitempty"`
	ChangedByUserID common.UUID `json:"changed_by_user_id,omitempty"`
	ChangedAt       time.Time   `json:"changed_at"`
}

type Note struct {
	ID            common.UUID `json:"id"`
	ApplicationID common.UUID `json:"application_id"`
	AuthorUserID  common.UUID `json:"author_user_id"`
	Body          string      `json:"body"`
	CreatedAt     time.Time   `json:"created_at"`
}
