package app

import (
	"context"
	"strings"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
	"github.com/monisha2608/HRMBackend/internal/domain/succession"
)

type SuccessionService struct {
	repo         succession.Repository
	applications application.Repository
	jobs         job.Repository
}

func NewSuccessionService(repo succession.Repository, applications application.Repository, jobs job.Repository) *SuccessionService {
	return &SuccessionService{repo: repo, applications: applications, jobs: jobs}
}

type SaveRecordRequest struct {
	ApplicationID     common.UUID
	PotentialNextRole string
	Readiness         string
	RiskOfLoss        string
	Notes             string
}

// Save upserts the planning record for a hired application. The readiness
// input populates the readiness tier and risk_of_loss the risk tier; blank
// inputs fall back to the documented defaults.
func (s *SuccessionService) Save(ctx context.Context, req SaveRecordRequest) (*succession.Record, error) {
	app, err := s.applications.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusHired {
		return nil, common.NewValidationError("application is not hired", map[string]string{"application_id": "succession planning requires a hired application"})
	}

	currentRole := "Unknown"
	if posting, jobErr := s.jobs.GetByID(ctx, app.JobID); jobErr == nil {
		currentRole = posting.Title
	}
	candidateName := app.ApplicantFullName
	if candidateName == "" {
		candidateName = "Unknown"
	}

	record := succession.Record{
		ApplicationID:     req.ApplicationID,
		CandidateName:     candidateName,
		CurrentRole:       currentRole,
		PotentialNextRole: strings.TrimSpace(req.PotentialNextRole),
		Readiness:         strings.TrimSpace(req.Readiness),
		RiskOfLoss:        strings.TrimSpace(req.RiskOfLoss),
		DevelopmentNotes:  strings.TrimSpace(req.Notes),
		LastUpdated:       time.Now().UTC(),
	}
	if record.Readiness == "" {
		record.Readiness = succession.DefaultReadiness
	}
	if record.RiskOfLoss == "" {
		record.RiskOfLoss = succession.DefaultRiskOfLoss
	}
	return s.repo.Upsert(ctx, record)
}

// Row pairs a hired application with its planning record, if any.
type SuccessionRow struct {
	ApplicationID common.UUID        `json:"application_id"`
	CandidateName string             `json:"candidate_name"`
	JobTitle      string             `json:"job_title"`
	Department    string             `json:"department,omitempty"`
	Record        *succession.Record `json:"record,omitempty"`
}

// List projects every hired application, left-joined with its record. An
// absent record is a valid "no planning data yet" state.
func (s *SuccessionService) List(ctx context.Context, search string) ([]SuccessionRow, error) {
	apps, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var hired []application.Application
	ids := make([]common.UUID, 0)
	for _, app := range apps {
		if app.Status != application.StatusHired {
			continue
		}
		hired = append(hired, app)
		ids = append(ids, app.ID)
	}

	records, err := s.repo.ListByApplications(ctx, ids)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	rows := make([]SuccessionRow, 0, len(hired))
	for _, app := range hired {
		jobTitle, department := "", ""
		if posting, jobErr := s.jobs.GetByID(ctx, app.JobID); jobErr == nil {
			jobTitle = posting.Title
			department = posting.Department
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(app.ApplicantFullName), search) &&
			!strings.Contains(strings.ToLower(app.ApplicantEmail), search) &&
			!strings.Contains(strings.ToLower(jobTitle), search) {
			continue
		}
		row := SuccessionRow{
			ApplicationID: app.ID,
			CandidateName: app.ApplicantFullName,
			JobTitle:      jobTitle,
			Department:    department,
		}
		if record, ok := records[app.ID]; ok {
			recordCopy := record
			row.Record = &recordCopy
		}
		rows = append(rows, row)
	}
	return rows, nil
}
