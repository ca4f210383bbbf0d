package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, description, department, location, employment_type, internal_only, posted_by_user_id, posted_on`

func scanJob(scanner interface{ Scan(...any) error }) (*job.Job, error) {
	var j job.Job
	if err := scanner.Scan(&j.ID, &j.Title, &j.Description, &j.Department, &j.Location, &j.EmploymentType, &j.InternalOnly, &j.PostedByUserID, &j.PostedOn); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	j.PostedOn = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, title, description, department, location, employment_type, internal_only, posted_by_user_id, posted_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.Title, j.Description, j.Department, j.Location, j.EmploymentType, j.InternalOnly, j.PostedByUserID, j.PostedOn)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, department = $3, location = $4, employment_type = $5, internal_only = $6 WHERE id = $7`,
		j.Title, j.Description, j.Department, j.Location, j.EmploymentType, j.InternalOnly, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_on DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	return items, nil
}

func (r *JobRepository) Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, int, error) {
	where := ``
	args := []any{}
	if filter.Search != "" {
		where = ` WHERE title ILIKE $1 OR department ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + jobColumns + ` FROM jobs` + where + ` ORDER BY posted_on DESC`
	if filter.Search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	return items, total, nil
}

func (r *JobRepository) CountApplications(ctx context.Context, jobID common.UUID) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}
