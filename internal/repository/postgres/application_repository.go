package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_user_id, applicant_full_name, applicant_email, applicant_phone, is_internal, employee_number, resume_url, cover_letter, status, score, shortlist_reason, applied_on`

func scanApplication(scanner interface{ Scan(...any) error }) (*application.Application, error) {
	var (
		app             application.Application
		candidateUserID sql.NullString
		score           sql.NullInt64
		reason          sql.NullString
	)
	if err := scanner.Scan(&app.ID, &app.JobID, &candidateUserID, &app.ApplicantFullName, &app.ApplicantEmail, &app.ApplicantPhone,
		&app.IsInternal, &app.EmployeeNumber, &app.ResumeURL, &app.CoverLetter, &app.Status, &score, &reason, &app.AppliedOn); err != nil {
		return nil, err
	}
	if candidateUserID.Valid {
		app.CandidateUserID = common.UUID(candidateUserID.String)
	}
	if score.Valid {
		value := int(score.Int64)
		app.Score = &value
	}
	if reason.Valid {
		app.ShortlistReason = &reason.String
	}
	return &app, nil
}

func nullUUID(id common.UUID) any {
	if id == "" {
		return nil
	}
	return id
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.AppliedOn = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, candidate_user_id, applicant_full_name, applicant_email, applicant_phone, is_internal, employee_number, resume_url, cover_letter, status, score, shortlist_reason, applied_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		app.ID, app.JobID, nullUUID(app.CandidateUserID), app.ApplicantFullName, app.ApplicantEmail, app.ApplicantPhone,
		app.IsInternal, app.EmployeeNumber, app.ResumeURL, app.CoverLetter, app.Status, app.Score, app.ShortlistReason, app.AppliedOn)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

// UpdateStatus writes the status and its history entry in one transaction so
// the audit log can never drift from the current status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status, entry application.StatusHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}

	entry.ID = common.NewUUID()
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO application_status_history (id, application_id, old_status, new_status, note, changed_by_user_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.ApplicationID, entry.OldStatus, entry.NewStatus, entry.Note, nullUUID(entry.ChangedByUserID), entry.ChangedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to append status history", err)
	}

	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit status update", err)
	}
	return nil
}

func (r *ApplicationRepository) SetScore(ctx context.Context, id common.UUID, score int, reason string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET score = $1, shortlist_reason = $2 WHERE id = $3 AND score IS NULL`, score, reason, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to set score", err)
	}
	return nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	where := `WHERE job_id = $1`
	args := []any{jobID}
	idx := 2
	if filter.Status != nil {
		where += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (applicant_email ILIKE $%d OR applicant_full_name ILIKE $%d OR applicant_phone ILIKE $%d)`, idx, idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	return r.list(ctx, where, args, idx, filter)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.UUID, filter application.ListFilter) ([]application.Application, int, error) {
	where := `WHERE candidate_user_id = $1`
	args := []any{candidateID}
	idx := 2
	if filter.Status != nil {
		where += ` AND status = $` + strconv.Itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	return r.list(ctx, where, args, idx, filter)
}

func (r *ApplicationRepository) list(ctx context.Context, where string, args []any, idx int, filter application.ListFilter) ([]application.Application, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications `+where, args...).Scan(&total); err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}

	order := ` ORDER BY applied_on DESC`
	if filter.Oldest {
		order = ` ORDER BY applied_on ASC`
	}
	query := `SELECT ` + applicationColumns + ` FROM applications ` + where + order
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, total, nil
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY applied_on DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count by status", err)
	}
	defer rows.Close()
	counts := make(map[application.Status]int)
	for rows.Next() {
		var status application.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan status count", err)
		}
		counts[status] = count
	}
	return counts, nil
}

func (r *ApplicationRepository) CountSince(ctx context.Context, days int) (map[string]int, error) {
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	rows, err := r.db.QueryContext(ctx, `SELECT DATE(applied_on), COUNT(*) FROM applications WHERE applied_on >= $1 GROUP BY DATE(applied_on)`, since)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count daily applications", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan daily count", err)
		}
		counts[day.Format("2006-01-02")] = count
	}
	return counts, nil
}

func (r *ApplicationRepository) AddHistory(ctx context.Context, entry application.StatusHistoryEntry) error {
	entry.ID = common.NewUUID()
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO application_status_history (id, application_id, old_status, new_status, note, changed_by_user_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.ApplicationID, entry.OldStatus, entry.NewStatus, entry.Note, nullUUID(entry.ChangedByUserID), entry.ChangedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to append status history", err)
	}
	return nil
}

func (r *ApplicationRepository) ListHistory(ctx context.Context, applicationID common.UUID) ([]application.StatusHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, application_id, old_status, new_status, note, changed_by_user_id, changed_at
		FROM application_status_history WHERE application_id = $1 ORDER BY changed_at DESC`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list status history", err)
	}
	defer rows.Close()
	var items []application.StatusHistoryEntry
	for rows.Next() {
		var entry application.StatusHistoryEntry
		var changedBy sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ApplicationID, &entry.OldStatus, &entry.NewStatus, &entry.Note, &changedBy, &entry.ChangedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan history entry", err)
		}
		if changedBy.Valid {
			entry.ChangedByUserID = common.UUID(changedBy.String)
		}
		items = append(items, entry)
	}
	return items, nil
}

func (r *ApplicationRepository) AddNote(ctx context.Context, note application.Note) error {
	note.ID = common.NewUUID()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO application_notes (id, application_id, author_user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.ApplicationID, note.AuthorUserID, note.Body, note.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to add note", err)
	}
	return nil
}

func (r *ApplicationRepository) ListNotes(ctx context.Context, applicationID common.UUID) ([]application.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, application_id, author_user_id, body, created_at
		FROM application_notes WHERE application_id = $1 ORDER BY created_at DESC`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notes", err)
	}
	defer rows.Close()
	var items []application.Note
	for rows.Next() {
		var note application.Note
		if err := rows.Scan(&note.ID, &note.ApplicationID, &note.AuthorUserID, &note.Body, &note.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan note", err)
		}
		items = append(items, note)
	}
	return items, nil
}
