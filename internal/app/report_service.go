package app

import (
	"context"
	"strings"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
)

type ReportService struct {
	applications application.Repository
	jobs         job.Repository
}

func NewReportService(applications application.Repository, jobs job.Repository) *ReportService {
	return &ReportService{applications: applications, jobs: jobs}
}

type Summary struct {
	TotalJobs            int            `json:"total_jobs"`
	TotalApplications    int            `json:"total_applications"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	ApplicationsLast7    []DailyCount   `json:"applications_last_7_days"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.applications.CountSince(ctx, 7)
	if err != nil {
		return nil, err
	}

	total := 0
	statuses := make(map[string]int, len(byStatus))
	for status, count := range byStatus {
		statuses[string(status)] = count
		total += count
	}

	// All seven days appear in the response even when empty.
	last7 := make([]DailyCount, 0, 7)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		last7 = append(last7, DailyCount{Day: day, Count: daily[day]})
	}

	return &Summary{
		TotalJobs:            len(jobs),
		TotalApplications:    total,
		ApplicationsByStatus: statuses,
		ApplicationsLast7:    last7,
	}, nil
}

// ExportCSV renders the applications export. All fields are double-quoted
// with embedded quotes doubled; timestamps use the sortable UTC form. When
// jobID is set the per-job variant omits the JobId and JobTitle columns.
func (s *ReportService) ExportCSV(ctx context.Context, jobID *common.UUID) (string, string, error) {
	var (
		apps []application.Application
		err  error
	)
	fileName := "applications_all.csv"
	if jobID != nil {
		if _, err = s.jobs.GetByID(ctx, *jobID); err != nil {
			return "", "", err
		}
		apps, _, err = s.applications.ListByJob(ctx, *jobID, application.ListFilter{})
		fileName = "applications_job_" + jobID.String() + ".csv"
	} else {
		apps, err = s.applications.ListAll(ctx)
	}
	if err != nil {
		return "", "", err
	}

	titles := make(map[common.UUID]string)
	titleFor := func(id common.UUID) string {
		if title, ok := titles[id]; ok {
			return title
		}
		title := ""
		if posting, jobErr := s.jobs.GetByID(ctx, id); jobErr == nil {
			title = posting.Title
		}
		titles[id] = title
		return title
	}

	var csv strings.Builder
	if jobID != nil {
		csv.WriteString("Id,CandidateEmail,CandidateName,Status,AppliedOn,ResumeUrl\n")
	} else {
		csv.WriteString("Id,JobId,JobTitle,CandidateEmail,CandidateName,Status,AppliedOn,ResumeUrl\n")
	}
	for _, app := range apps {
		fields := []string{app.ID.String()}
		if jobID == nil {
			fields = append(fields, app.JobID.String(), titleFor(app.JobID))
		}
		fields = append(fields,
			app.ApplicantEmail,
			app.ApplicantFullName,
			string(app.Status),
			app.AppliedOn.UTC().Format("2006-01-02 15:04:05Z"),
			app.ResumeURL,
		)
		escaped := make([]string, len(fields))
		for i, field := range fields {
			escaped[i] = escapeCSV(field)
		}
		csv.WriteString(strings.Join(escaped, ","))
		csv.WriteByte('\n')
	}
	return csv.String(), fileName, nil
}

func escapeCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
