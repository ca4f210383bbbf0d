package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/onboarding"
)

type OnboardingRepository struct {
	db *sql.DB
}

func NewOnboardingRepository(db *sql.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

func (r *OnboardingRepository) CreatePlan(ctx context.Context, plan onboarding.Plan) (*onboarding.Plan, error) {
	plan.ID = common.NewUUID()
	if plan.StartDate.IsZero() {
		plan.StartDate = time.Now().UTC()
	}
	var applicationID any
	if plan.ApplicationID != nil {
		applicationID = *plan.ApplicationID
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO onboarding_plans (id, application_id, candidate_name, start_date)
		VALUES ($1, $2, $3, $4)`,
		plan.ID, applicationID, plan.CandidateName, plan.StartDate)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create onboarding plan", err)
	}
	return &plan, nil
}

func (r *OnboardingRepository) GetPlan(ctx context.Context, id common.UUID) (*onboarding.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, application_id, candidate_name, start_date FROM onboarding_plans WHERE id = $1`, id)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "onboarding plan not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load onboarding plan", err)
	}
	tasks, err := r.listTasks(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Tasks = tasks
	return plan, nil
}

func scanPlan(scanner interface{ Scan(...any) error }) (*onboarding.Plan, error) {
	var plan onboarding.Plan
	var applicationID sql.NullString
	if err := scanner.Scan(&plan.ID, &applicationID, &plan.CandidateName, &plan.StartDate); err != nil {
		return nil, err
	}
	if applicationID.Valid {
		id := common.UUID(applicationID.String)
		plan.ApplicationID = &id
	}
	return &plan, nil
}

func (r *OnboardingRepository) ListPlans(ctx context.Context, filter onboarding.ListFilter) ([]onboarding.Plan, int, error) {
	where := ``
	args := []any{}
	if filter.Search != "" {
		where = ` WHERE candidate_name ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM onboarding_plans`+where, args...).Scan(&total); err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to count onboarding plans", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, application_id, candidate_name, start_date FROM onboarding_plans` + where + ` ORDER BY start_date DESC`
	if filter.Search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to list onboarding plans", err)
	}
	defer rows.Close()

	plans, err := r.collectPlansWithTasks(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

// ListPlansByCandidate returns plans whose linked application belongs to the
// candidate and is Hired.
func (r *OnboardingRepository) ListPlansByCandidate(ctx context.Context, candidateID common.UUID) ([]onboarding.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT p.id, p.application_id, p.candidate_name, p.start_date
		FROM onboarding_plans p
		JOIN applications a ON a.id = p.application_id
		WHERE a.candidate_user_id = $1 AND a.status = 'Hired'
		ORDER BY p.start_date DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidate onboarding plans", err)
	}
	defer rows.Close()
	return r.collectPlansWithTasks(ctx, rows)
}

func (r *OnboardingRepository) collectPlansWithTasks(ctx context.Context, rows *sql.Rows) ([]onboarding.Plan, error) {
	var plans []onboarding.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan onboarding plan", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to iterate onboarding plans", err)
	}
	for i := range plans {
		tasks, err := r.listTasks(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Tasks = tasks
	}
	return plans, nil
}

func (r *OnboardingRepository) DeletePlan(ctx context.Context, id common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM onboarding_tasks WHERE plan_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete plan tasks", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM onboarding_plans WHERE id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete onboarding plan", err)
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit plan deletion", err)
	}
	return nil
}

func (r *OnboardingRepository) AddTask(ctx context.Context, task onboarding.Task) (*onboarding.Task, error) {
	task.ID = common.NewUUID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO onboarding_tasks (id, plan_id, name, assigned_to, due_date, is_completed, completed_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.PlanID, task.Name, task.AssignedTo, task.DueDate, task.IsCompleted, task.CompletedOn)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to add onboarding task", err)
	}
	return &task, nil
}

func (r *OnboardingRepository) GetTask(ctx context.Context, id common.UUID) (*onboarding.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, plan_id, name, assigned_to, due_date, is_completed, completed_on FROM onboarding_tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "onboarding task not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load onboarding task", err)
	}
	return task, nil
}

func scanTask(scanner interface{ Scan(...any) error }) (*onboarding.Task, error) {
	var task onboarding.Task
	var dueDate, completedOn sql.NullTime
	if err := scanner.Scan(&task.ID, &task.PlanID, &task.Name, &task.AssignedTo, &dueDate, &task.IsCompleted, &completedOn); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}
	if completedOn.Valid {
		completed := completedOn.Time
		task.CompletedOn = &completed
	}
	return &task, nil
}

func (r *OnboardingRepository) UpdateTask(ctx context.Context, task onboarding.Task) error {
	_, err := r.db.ExecContext(ctx, `UPDATE onboarding_tasks SET name = $1, assigned_to = $2, due_date = $3, is_completed = $4, completed_on = $5 WHERE id = $6`,
		task.Name, task.AssignedTo, task.DueDate, task.IsCompleted, task.CompletedOn, task.ID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update onboarding task", err)
	}
	return nil
}

func (r *OnboardingRepository) DeleteTask(ctx context.Context, id common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM onboarding_tasks WHERE id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete onboarding task", err)
	}
	return nil
}

func (r *OnboardingRepository) listTasks(ctx context.Context, planID common.UUID) ([]onboarding.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, plan_id, name, assigned_to, due_date, is_completed, completed_on FROM onboarding_tasks WHERE plan_id = $1`, planID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list onboarding tasks", err)
	}
	defer rows.Close()
	var tasks []onboarding.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan onboarding task", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}
