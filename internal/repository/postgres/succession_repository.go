package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/monisha2608/HRMBackend/internal/common"
	"github.com/monisha2608/HRMBackend/internal/domain/succession"
)

type SuccessionRepository struct {
	db *sql.DB
}

func NewSuccessionRepository(db *sql.DB) *SuccessionRepository {
	return &SuccessionRepository{db: db}
}

// "current_role" is a reserved word in Postgres, hence the quoting.
const successionColumns = `id, application_id, candidate_name, "current_role", potential_next_role, readiness, risk_of_loss, development_notes, last_updated`

// Upsert keys the record by application id: at most one record per
// application.
func (r *SuccessionRepository) Upsert(ctx context.Context, record succession.Record) (*succession.Record, error) {
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now().UTC()
	}
	record.ID = common.NewUUID()
	row := r.db.QueryRowContext(ctx, `INSERT INTO succession_records (id, application_id, candidate_name, "current_role", potential_next_role, readiness, risk_of_loss, development_notes, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (application_id) DO UPDATE SET
			candidate_name = EXCLUDED.candidate_name,
			"current_role" = EXCLUDED."current_role",
			potential_next_role = EXCLUDED.potential_next_role,
			readiness = EXCLUDED.readiness,
			risk_of_loss = EXCLUDED.risk_of_loss,
			development_notes = EXCLUDED.development_notes,
			last_updated = EXCLUDED.last_updated
		RETURNING `+successionColumns,
		record.ID, record.ApplicationID, record.CandidateName, record.CurrentRole, record.PotentialNextRole,
		record.Readiness, record.RiskOfLoss, record.DevelopmentNotes, record.LastUpdated)
	saved, err := scanSuccession(row)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save succession record", err)
	}
	return saved, nil
}

func (r *SuccessionRepository) GetByApplication(ctx context.Context, applicationID common.UUID) (*succession.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+successionColumns+` FROM succession_records WHERE application_id = $1`, applicationID)
	record, err := scanSuccession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "succession record not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load succession record", err)
	}
	return record, nil
}

func (r *SuccessionRepository) ListByApplications(ctx context.Context, applicationIDs []common.UUID) (map[common.UUID]succession.Record, error) {
	records := make(map[common.UUID]succession.Record, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return records, nil
	}
	ids := make([]string, len(applicationIDs))
	for i, id := range applicationIDs {
		ids[i] = id.String()
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+successionColumns+` FROM succession_records WHERE application_id = ANY($1)`, ids)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list succession records", err)
	}
	defer rows.Close()
	for rows.Next() {
		record, err := scanSuccession(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan succession record", err)
		}
		records[record.ApplicationID] = *record
	}
	return records, nil
}

func scanSuccession(scanner interface{ Scan(...any) error }) (*succession.Record, error) {
	var record succession.Record
	if err := scanner.Scan(&record.ID, &record.ApplicationID, &record.CandidateName, &record.CurrentRole,
		&record.PotentialNextRole, &record.Readiness, &record.RiskOfLoss, &record.DevelopmentNotes, &record.LastUpdated); err != nil {
		return nil, err
	}
	return &record, nil
}
