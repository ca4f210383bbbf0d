package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
	"github.com/monisha2608/HRMBackend/internal/shortlist"
)

type fakeApplicationRepo struct {
	mu      sync.Mutex
	apps    map[common.UUID]*application.Application
	history map[common.UUID][]application.StatusHistoryEntry
	notes   map[common.UUID][]application.Note
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:    make(map[common.UUID]*application.Application),
		history: make(map[common.UUID][]application.StatusHistoryEntry),
		notes:   make(map[common.UUID][]application.Note),
	}
}

func cloneApplication(app *application.Application) *application.Application {
	copied := *app
	if app.Score != nil {
		score := *app.Score
		copied.Score = &score
	}
	if app.ShortlistReason != nil {
		reason := *app.ShortlistReason
		copied.ShortlistReason = &reason
	}
	return &copied
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = common.NewUUID()
	if app.AppliedOn.IsZero() {
		app.AppliedOn = time.Now().UTC()
	}
	r.apps[app.ID] = &app
	return cloneApplication(&app), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status, entry application.StatusHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	entry.ID = common.NewUUID()
	r.history[id] = append(r.history[id], entry)
	return nil
}

func (r *fakeApplicationRepo) SetScore(ctx context.Context, id common.UUID, score int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.apps[id]
	if app == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Score = &score
	app.ShortlistReason = &reason
	return nil
}

func (r *fakeApplicationRepo) list(match func(*application.Application) bool, filter application.ListFilter) ([]application.Application, int) {
	var items []application.Application
	for _, app := range r.apps {
		if !match(app) {
			continue
		}
		if filter.Status != nil && app.Status != *filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(app.ApplicantFullName), needle) &&
				!strings.Contains(strings.ToLower(app.ApplicantEmail), needle) {
				continue
			}
		}
		items = append(items, *cloneApplication(app))
	}
	sort.Slice(items, func(i, j int) bool {
		if filter.Oldest {
			return items[i].AppliedOn.Before(items[j].AppliedOn)
		}
		return items[i].AppliedOn.After(items[j].AppliedOn)
	})
	total := len(items)
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			items = nil
		} else {
			items = items[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, total
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(app *application.Application) bool { return app.JobID == jobID }, filter)
	return items, total, nil
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(app *application.Application) bool { return app.CandidateUserID == candidateID }, filter)
	return items, total, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, _ := r.list(func(*application.Application) bool { return true }, application.ListFilter{})
	return items, nil
}

func (r *fakeApplicationRepo) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[application.Status]int)
	for _, app := range r.apps {
		counts[app.Status]++
	}
	return counts, nil
}

func (r *fakeApplicationRepo) CountSince(ctx context.Context, days int) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	counts := make(map[string]int)
	for _, app := range r.apps {
		if app.AppliedOn.After(cutoff) {
			counts[app.AppliedOn.UTC().Format("2006-01-02")]++
		}
	}
	return counts, nil
}

func (r *fakeApplicationRepo) AddHistory(ctx context.Context, entry application.StatusHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = common.NewUUID()
	r.history[entry.ApplicationID] = append(r.history[entry.ApplicationID], entry)
	return nil
}

func (r *fakeApplicationRepo) ListHistory(ctx context.Context, applicationID common.UUID) ([]application.StatusHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]application.StatusHistoryEntry(nil), r.history[applicationID]...), nil
}

func (r *fakeApplicationRepo) AddNote(ctx context.Context, note application.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = common.NewUUID()
	r.notes[note.ApplicationID] = append(r.notes[note.ApplicationID], note)
	return nil
}

func (r *fakeApplicationRepo) ListNotes(ctx context.Context, applicationID common.UUID) ([]application.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]application.Note(nil), r.notes[applicationID]...), nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	if j.PostedOn.IsZero() {
		j.PostedOn = time.Now().UTC()
	}
	r.jobs[j.ID] = &j
	copied := j
	return &copied, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.jobs[j.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	r.jobs[j.ID] = &j
	copied := j
	return &copied, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.jobs[id] == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting := r.jobs[id]
	if posting == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *posting
	return &copied, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.jobs))
	for _, posting := range r.jobs {
		items = append(items, *posting)
	}
	return items, nil
}

func (r *fakeJobRepo) Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	needle := strings.ToLower(filter.Search)
	for _, posting := range r.jobs {
		if needle != "" &&
			!strings.Contains(strings.ToLower(posting.Title), needle) &&
			!strings.Contains(strings.ToLower(posting.Department), needle) {
			continue
		}
		items = append(items, *posting)
	}
	total := len(items)
	return items, total, nil
}

func (r *fakeJobRepo) CountApplications(ctx context.Context, jobID common.UUID) (int, error) {
	return 0, nil
}

type sentMail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeResumeStore struct {
	mu    sync.Mutex
	saves int
}

func (s *fakeResumeStore) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.saves++
	return "/uploads/resumes/test" + ext, nil
}

func (s *fakeResumeStore) Delete(ctx context.Context, url string) error {
	return nil
}

func (s *fakeResumeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type rejectingScanner struct{}

func (rejectingScanner) IsClean(ctx context.Context, r io.Reader, fileName string) (bool, error) {
	return false, nil
}

type acceptingScanner struct{}

func (acceptingScanner) IsClean(ctx context.Context, r io.Reader, fileName string) (bool, error) {
	return true, nil
}

type submitFixture struct {
	service *ApplicationService
	apps    *fakeApplicationRepo
	jobs    *fakeJobRepo
	mailer  *fakeMailer
	store   *fakeResumeStore
	job     *job.Job
}

func newSubmitFixture(t *testing.T, description string) *submitFixture {
	t.Helper()
	apps := newFakeApplicationRepo()
	jobs := newFakeJobRepo()
	mailer := &fakeMailer{}
	store := &fakeResumeStore{}
	scorer := shortlist.NewScorer(shortlist.Config{
		Keywords:  map[string]int{"go": 30, "kubernetes": 40},
		Threshold: 60,
	})
	service := NewApplicationService(apps, jobs, scorer, mailer, store, acceptingScanner{}, nil, 10_000_000)
	posting, err := jobs.Create(context.Background(), job.Job{Title: "Platform Engineer", Description: description})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return &submitFixture{service: service, apps: apps, jobs: jobs, mailer: mailer, store: store, job: posting}
}

func validSubmit(jobID common.UUID) SubmitRequest {
	return SubmitRequest{
		JobID:          jobID,
		FullName:       "Dana Smith",
		Email:          "dana@example.com",
		CoverLetter:    "",
		Resume:         strings.NewReader("resume body"),
		ResumeFileName: "cv.pdf",
		ResumeSize:     int64(len("resume body")),
	}
}

func TestSubmitAutoShortlists(t *testing.T) {
	f := newSubmitFixture(t, "We run Go services on Kubernetes")

	created, err := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Status != application.StatusShortlisted {
		t.Fatalf("expected Shortlisted, got %s", created.Status)
	}
	if created.Score == nil || *created.Score != 70 {
		t.Fatalf("expected score 70, got %v", created.Score)
	}
	if created.ShortlistReason == nil || *created.ShortlistReason != "go+30, kubernetes+40" {
		t.Fatalf("unexpected reason %v", created.ShortlistReason)
	}

	history, err := f.apps.ListHistory(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.OldStatus != "Applied" || entry.NewStatus != "Shortlisted" {
		t.Fatalf("unexpected transition %s -> %s", entry.OldStatus, entry.NewStatus)
	}
	if entry.Note != "Auto-shortlisted (score 70)" {
		t.Fatalf("unexpected note %q", entry.Note)
	}
	if entry.ChangedByUserID != "" {
		t.Fatalf("system transition must carry no actor, got %q", entry.ChangedByUserID)
	}

	// Received mail plus the status-changed mail.
	if f.mailer.sentCount() != 2 {
		t.Fatalf("expected 2 mails, got %d", f.mailer.sentCount())
	}
}

func TestSubmitBelowThresholdStaysApplied(t *testing.T) {
	f := newSubmitFixture(t, "We use Go a lot")

	created, err := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Status != application.StatusApplied {
		t.Fatalf("expected Applied, got %s", created.Status)
	}
	if created.Score == nil || *created.Score != 30 {
		t.Fatalf("expected score 30, got %v", created.Score)
	}

	history, _ := f.apps.ListHistory(context.Background(), created.ID)
	if len(history) != 0 {
		t.Fatalf("expected no history entries, got %d", len(history))
	}
}

func TestSubmitInternalBonus(t *testing.T) {
	f := newSubmitFixture(t, "We run Go services on Kubernetes")

	req := validSubmit(f.job.ID)
	req.IsInternal = true
	req.EmployeeNumber = "E-1001"

	created, err := f.service.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Score == nil || *created.Score != 75 {
		t.Fatalf("expected score 75, got %v", created.Score)
	}
	if created.ShortlistReason == nil || *created.ShortlistReason != "go+30, kubernetes+40 (internal+5)" {
		t.Fatalf("unexpected reason %v", created.ShortlistReason)
	}
	if created.Status != application.StatusShortlisted {
		t.Fatalf("expected Shortlisted, got %s", created.Status)
	}
}

func TestSubmitInternalRequiresEmployeeNumber(t *testing.T) {
	f := newSubmitFixture(t, "Any role")

	req := validSubmit(f.job.ID)
	req.IsInternal = true

	if _, err := f.service.Submit(context.Background(), req); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRejectsDisallowedExtensionBeforeStore(t *testing.T) {
	f := newSubmitFixture(t, "Any role")

	req := validSubmit(f.job.ID)
	req.ResumeFileName = "cv.exe"

	if _, err := f.service.Submit(context.Background(), req); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.store.saveCount() != 0 {
		t.Fatalf("store must not be written for a rejected resume")
	}
}

func TestSubmitRejectsOversizedResume(t *testing.T) {
	f := newSubmitFixture(t, "Any role")

	req := validSubmit(f.job.ID)
	req.ResumeSize = 10_000_001

	if _, err := f.service.Submit(context.Background(), req); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.store.saveCount() != 0 {
		t.Fatalf("store must not be written for a rejected resume")
	}
}

func TestSubmitUnknownJob(t *testing.T) {
	f := newSubmitFixture(t, "Any role")

	req := validSubmit(common.NewUUID())

	if _, err := f.service.Submit(context.Background(), req); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRejectsUncleanResume(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	f.service.scanner = rejectingScanner{}

	if _, err := f.service.Submit(context.Background(), validSubmit(f.job.ID)); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.store.saveCount() != 0 {
		t.Fatalf("store must not be written for a rejected resume")
	}
}

func TestSubmitMailFailureDoesNotFailSubmission(t *testing.T) {
	f := newSubmitFixture(t, "We run Go services on Kubernetes")
	f.mailer.fail = true

	created, err := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	if err != nil {
		t.Fatalf("submit must survive mail failure: %v", err)
	}
	if created.Status != application.StatusShortlisted {
		t.Fatalf("expected Shortlisted, got %s", created.Status)
	}
}

func TestSetStatusRecordsHistoryWithDefaultNote(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	created, err := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	actor := common.NewUUID()

	if err := f.service.SetStatus(context.Background(), created.ID, "underreview", actor, ""); err != nil {
		t.Fatalf("set status: %v", err)
	}

	stored, _ := f.apps.GetByID(context.Background(), created.ID)
	if stored.Status != application.StatusUnderReview {
		t.Fatalf("expected UnderReview, got %s", stored.Status)
	}
	history, _ := f.apps.ListHistory(context.Background(), created.ID)
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.Note != "Updated by HR" {
		t.Fatalf("unexpected note %q", entry.Note)
	}
	if entry.ChangedByUserID != actor {
		t.Fatalf("expected actor %s, got %s", actor, entry.ChangedByUserID)
	}
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	created, _ := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	mailsBefore := f.mailer.sentCount()

	if err := f.service.SetStatus(context.Background(), created.ID, "Applied", common.NewUUID(), ""); err != nil {
		t.Fatalf("same-status update must be a no-op: %v", err)
	}

	history, _ := f.apps.ListHistory(context.Background(), created.ID)
	if len(history) != 0 {
		t.Fatalf("no-op must not write history, got %d entries", len(history))
	}
	if f.mailer.sentCount() != mailsBefore {
		t.Fatalf("no-op must not send mail")
	}
}

func TestSetStatusRejectsUnknownLabel(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	created, _ := f.service.Submit(context.Background(), validSubmit(f.job.ID))

	err := f.service.SetStatus(context.Background(), created.ID, "Archived", common.NewUUID(), "")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	stored, _ := f.apps.GetByID(context.Background(), created.ID)
	if stored.Status != application.StatusApplied {
		t.Fatalf("application must be untouched, got %s", stored.Status)
	}
}

func TestSetStatusNotFound(t *testing.T) {
	f := newSubmitFixture(t, "Any role")

	err := f.service.SetStatus(context.Background(), common.NewUUID(), "Hired", common.NewUUID(), "")
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddNoteRejectsEmptyBody(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	created, _ := f.service.Submit(context.Background(), validSubmit(f.job.ID))

	err := f.service.AddNote(context.Background(), created.ID, common.NewUUID(), "   ")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddNoteTrimsBody(t *testing.T) {
	f := newSubmitFixture(t, "Any role")
	created, _ := f.service.Submit(context.Background(), validSubmit(f.job.ID))
	author := common.NewUUID()

	if err := f.service.AddNote(context.Background(), created.ID, author, "  strong take-home  "); err != nil {
		t.Fatalf("add note: %v", err)
	}

	notes, _ := f.apps.ListNotes(context.Background(), created.ID)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Body != "strong take-home" {
		t.Fatalf("unexpected body %q", notes[0].Body)
	}
	if notes[0].AuthorUserID != author {
		t.Fatalf("unexpected author %s", notes[0].AuthorUserID)
	}
}
