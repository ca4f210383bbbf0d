package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
	"github.com/monisha2608/HRMBackend/internal/mail"
	"github.com/monisha2608/HRMBackend/internal/scan"
	"github.com/monisha2608/HRMBackend/internal/shortlist"
	"github.com/monisha2608/HRMBackend/internal/storage"
)

var allowedResumeExts = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type ApplicationService struct {
	repo           application.Repository
	jobs           job.Repository
	scorer         *shortlist.Scorer
	mailer         mail.Sender
	resumes        storage.ResumeStore
	scanner        scan.Scanner
	logger         *zap.Logger
	resumeMaxBytes int64
}

func NewApplicationService(
	repo application.Repository,
	jobs job.Repository,
	scorer *shortlist.Scorer,
	mailer mail.Sender,
	resumes storage.ResumeStore,
	scanner scan.Scanner,
	logger *zap.Logger,
	resumeMaxBytes int64,
) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resumeMaxBytes <= 0 {
		resumeMaxBytes = 10_000_000
	}
	return &ApplicationService{
		repo:           repo,
		jobs:           jobs,
		scorer:         scorer,
		mailer:         mailer,
		resumes:        resumes,
		scanner:        scanner,
		logger:         logger,
		resumeMaxBytes: resumeMaxBytes,
	}
}

type SubmitRequest struct {
	JobID           common.UUID
	CandidateUserID common.UUID
	FullName        string
	Email           string
	Phone           string
	CoverLetter     string
	IsInternal      bool
	EmployeeNumber  string
	Resume          io.Reader
	ResumeFileName  string
	ResumeSize      int64
}

// Submit validates the request, scores the application, persists it, and
// applies the automatic shortlist transition before returning. Resume
// validation happens before any storage write.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitRequest) (*application.Application, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"full_name": "full_name is required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"email": "email is required"})
	}
	if req.IsInternal && strings.TrimSpace(req.EmployeeNumber) == "" {
		return nil, common.NewValidationError("employee number is required for internal applicants", map[string]string{"employee_number": "employee_number is required"})
	}

	ext := strings.ToLower(filepath.Ext(req.ResumeFileName))
	if !allowedResumeExts[ext] {
		return nil, common.NewValidationError("resume must be PDF or Word", map[string]string{"resume": "allowed extensions: .pdf, .doc, .docx"})
	}
	if req.ResumeSize <= 0 || req.ResumeSize > s.resumeMaxBytes {
		return nil, common.NewValidationError("resume size must be 1 byte to "+strconv.FormatInt(s.resumeMaxBytes, 10)+" bytes", map[string]string{"resume": "invalid size"})
	}

	posting, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("invalid job", map[string]string{"job_id": "job does not exist"})
		}
		return nil, err
	}

	// Buffer the upload so the scan and the storage write each see the full
	// stream. The declared size was already checked against the cap above.
	resume, err := io.ReadAll(io.LimitReader(req.Resume, s.resumeMaxBytes+1))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read resume", err)
	}
	if len(resume) == 0 || int64(len(resume)) > s.resumeMaxBytes {
		return nil, common.NewValidationError("resume size must be 1 byte to "+strconv.FormatInt(s.resumeMaxBytes, 10)+" bytes", map[string]string{"resume": "invalid size"})
	}

	clean, err := s.scanner.IsClean(ctx, bytes.NewReader(resume), req.ResumeFileName)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to scan resume", err)
	}
	if !clean {
		return nil, common.NewValidationError("resume rejected by virus scan", map[string]string{"resume": "file failed scanning"})
	}

	resumeURL, err := s.resumes.Save(ctx, bytes.NewReader(resume), ext)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to store resume", err)
	}

	score, reason := s.scorer.Score(posting.Description, req.CoverLetter)
	if req.IsInternal {
		score, reason = s.scorer.ApplyInternalBonus(score, reason)
	}

	app := application.Application{
		JobID:             req.JobID,
		CandidateUserID:   req.CandidateUserID,
		ApplicantFullName: strings.TrimSpace(req.FullName),
		ApplicantEmail:    strings.TrimSpace(req.Email),
		ApplicantPhone:    strings.TrimSpace(req.Phone),
		IsInternal:        req.IsInternal,
		EmployeeNumber:    strings.TrimSpace(req.EmployeeNumber),
		ResumeURL:         resumeURL,
		CoverLetter:       req.CoverLetter,
		Status:            application.StatusApplied,
		Score:             &score,
		ShortlistReason:   &reason,
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	// Delivery outcome is intentionally discarded: mail is best-effort and
	// must never fail the submission.
	if created.ApplicantEmail != "" {
		if mailErr := s.mailer.Send(ctx, created.ApplicantEmail,
			"Application received — "+posting.Title,
			mail.ApplicationReceived(created.ApplicantFullName, posting.Title)); mailErr != nil {
			s.logger.Warn("application-received mail failed",
				zap.String("application_id", created.ID.String()), zap.Error(mailErr))
		}
	}

	if score >= s.scorer.Threshold() && created.Status == application.StatusApplied {
		note := "Auto-shortlisted (score " + strconv.Itoa(score) + ")"
		if err := s.transition(ctx, created, application.StatusShortlisted, "", note, posting.Title); err != nil {
			return nil, err
		}
		created.Status = application.StatusShortlisted
	}

	return created, nil
}

// SetStatus moves an application to the requested status. Any-to-any
// transitions are accepted; the only guard is the closed enumeration and the
// same-status no-op.
func (s *ApplicationService) SetStatus(ctx context.Context, id common.UUID, label string, actorID common.UUID, note string) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	status, ok := application.ParseStatus(label)
	if !ok {
		return common.NewValidationError("invalid status", map[string]string{"status": "status must be one of Applied, UnderReview, Shortlisted, Rejected, InterviewScheduled, Offered, Hired"})
	}
	if status == app.Status {
		return nil
	}
	if note == "" {
		note = "Updated by HR"
	}
	jobTitle := "your application"
	if posting, jobErr := s.jobs.GetByID(ctx, app.JobID); jobErr == nil {
		jobTitle = posting.Title
	}
	return s.transition(ctx, app, status, actorID, note, jobTitle)
}

// transition persists the status plus its history entry (authoritative, one
// transaction) and then attempts the status-changed notification, whose
// failure is swallowed.
func (s *ApplicationService) transition(ctx context.Context, app *application.Application, status application.Status, actorID common.UUID, note, jobTitle string) error {
	entry := application.StatusHistoryEntry{
		ApplicationID:   app.ID,
		OldStatus:       string(app.Status),
		NewStatus:       string(status),
		Note:            note,
		ChangedByUserID: actorID,
		ChangedAt:       time.Now().UTC(),
	}
	if err := s.repo.UpdateStatus(ctx, app.ID, status, entry); err != nil {
		return err
	}

	if app.ApplicantEmail != "" {
		name := app.ApplicantFullName
		if name == "" {
			name = "Candidate"
		}
		if mailErr := s.mailer.Send(ctx, app.ApplicantEmail,
			"Your application status was updated — "+jobTitle,
			mail.StatusChanged(name, jobTitle, string(status))); mailErr != nil {
			s.logger.Warn("status-changed mail failed",
				zap.String("application_id", app.ID.String()),
				zap.String("status", string(status)), zap.Error(mailErr))
		}
	}
	return nil
}

func (s *ApplicationService) AddNote(ctx context.Context, id common.UUID, authorID common.UUID, body string) error {
	if strings.TrimSpace(body) == "" {
		return common.NewValidationError("note cannot be empty", map[string]string{"body": "body is required"})
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.AddNote(ctx, application.Note{
		ApplicationID: id,
		AuthorUserID:  authorID,
		Body:          strings.TrimSpace(body),
		CreatedAt:     time.Now().UTC(),
	})
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) History(ctx context.Context, id common.UUID) ([]application.StatusHistoryEntry, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, id)
}

func (s *ApplicationService) Notes(ctx context.Context, id common.UUID) ([]application.Note, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListNotes(ctx, id)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByJob(ctx, jobID, filter)
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	return s.repo.ListByCandidate(ctx, candidateID, filter)
}
