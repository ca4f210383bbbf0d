package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
)

func newReportFixture(t *testing.T) (*ReportService, *fakeApplicationRepo, *fakeJobRepo) {
	t.Helper()
	apps := newFakeApplicationRepo()
	jobs := newFakeJobRepo()
	return NewReportService(apps, jobs), apps, jobs
}

func TestSummaryAlwaysReportsSevenDays(t *testing.T) {
	service, apps, jobs := newReportFixture(t)
	if _, err := jobs.Create(context.Background(), job.Job{Title: "Platform Engineer"}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := apps.Create(context.Background(), application.Application{Status: application.StatusApplied}); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if _, err := apps.Create(context.Background(), application.Application{Status: application.StatusHired}); err != nil {
		t.Fatalf("create application: %v", err)
	}

	summary, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalJobs != 1 {
		t.Fatalf("expected 1 job, got %d", summary.TotalJobs)
	}
	if summary.TotalApplications != 2 {
		t.Fatalf("expected 2 applications, got %d", summary.TotalApplications)
	}
	if summary.ApplicationsByStatus["Applied"] != 1 || summary.ApplicationsByStatus["Hired"] != 1 {
		t.Fatalf("unexpected status counts %v", summary.ApplicationsByStatus)
	}
	if len(summary.ApplicationsLast7) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(summary.ApplicationsLast7))
	}
	today := time.Now().UTC().Format("2006-01-02")
	last := summary.ApplicationsLast7[6]
	if last.Day != today {
		t.Fatalf("last bucket must be today, got %s", last.Day)
	}
	if last.Count != 2 {
		t.Fatalf("expected 2 applications today, got %d", last.Count)
	}
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	service, apps, jobs := newReportFixture(t)
	posting, _ := jobs.Create(context.Background(), job.Job{Title: `Senior "Go" Engineer`})
	created, _ := apps.Create(context.Background(), application.Application{
		JobID:             posting.ID,
		ApplicantFullName: "Dana Smith",
		ApplicantEmail:    "dana@example.com",
		Status:            application.StatusApplied,
		ResumeURL:         "/uploads/resumes/abc.pdf",
	})

	csv, fileName, err := service.ExportCSV(context.Background(), nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if fileName != "applications_all.csv" {
		t.Fatalf("unexpected file name %q", fileName)
	}
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Id,JobId,JobTitle,CandidateEmail,CandidateName,Status,AppliedOn,ResumeUrl" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	row := lines[1]
	if !strings.Contains(row, `"Senior ""Go"" Engineer"`) {
		t.Fatalf("embedded quotes must be doubled inside a quoted field: %q", row)
	}
	if !strings.Contains(row, `"`+created.ID.String()+`"`) {
		t.Fatalf("id must be quoted: %q", row)
	}
	appliedOn := created.AppliedOn.UTC().Format("2006-01-02 15:04:05Z")
	if !strings.Contains(row, `"`+appliedOn+`"`) {
		t.Fatalf("timestamp must use the sortable UTC form: %q", row)
	}
}

func TestExportCSVPerJobOmitsJobColumns(t *testing.T) {
	service, apps, jobs := newReportFixture(t)
	posting, _ := jobs.Create(context.Background(), job.Job{Title: "Platform Engineer"})
	other, _ := jobs.Create(context.Background(), job.Job{Title: "Data Engineer"})
	if _, err := apps.Create(context.Background(), application.Application{JobID: posting.ID, Status: application.StatusApplied}); err != nil {
		t.Fatalf("create application: %v", err)
	}
	if _, err := apps.Create(context.Background(), application.Application{JobID: other.ID, Status: application.StatusApplied}); err != nil {
		t.Fatalf("create application: %v", err)
	}

	csv, fileName, err := service.ExportCSV(context.Background(), &posting.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if fileName != "applications_job_"+posting.ID.String()+".csv" {
		t.Fatalf("unexpected file name %q", fileName)
	}
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if lines[0] != "Id,CandidateEmail,CandidateName,Status,AppliedOn,ResumeUrl" {
		t.Fatalf("per-job header must omit job columns, got %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("export must cover only the requested job, got %d rows", len(lines)-1)
	}
}

func TestExportCSVUnknownJob(t *testing.T) {
	service, _, _ := newReportFixture(t)
	missing := common.NewUUID()

	if _, _, err := service.ExportCSV(context.Background(), &missing); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
