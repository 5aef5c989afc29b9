package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

const prospectColumns = `
	id, name, COALESCE(contact_name, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(status, ''), status_date,
	COALESCE(setup_amount, 0), COALESCE(monthly_amount, 0), COALESCE(annual_amount, 0),
	COALESCE(training_amount, 0), COALESCE(material_amount, 0), COALESCE(chance_percent, 0),
	COALESCE(assigned_to, ''), COALESCE(next_action, ''), deadline, quote_date,
	COALESCE(decision_maker, ''), COALESCE(notes, ''), COALESCE(pdf_key, ''),
	COALESCE(user_id, 0), created_at, updated_at
`

func (r *ProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (
			name, contact_name, email, phone, status, status_date,
			setup_amount, monthly_amount, annual_amount, training_amount, material_amount,
			chance_percent, assigned_to, next_action, deadline, quote_date,
			decision_maker, notes, user_id
		) VALUES (
			$1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6,
			$7, $8, $9, $10, $11,
			$12, NULLIF($13, ''), NULLIF($14, ''), $15, $16,
			NULLIF($17, ''), NULLIF($18, ''), $19
		)
		RETURNING id, created_at, updated_at
	`

	today := dateOnly(time.Now())
	p.StatusDate = &today

	return r.DB.QueryRowContext(ctx, query,
		p.Name, p.ContactName, p.Email, p.Phone, p.Status, today,
		p.SetupAmount, p.MonthlyAmount, p.AnnualAmount, p.TrainingAmount, p.MaterialAmount,
		p.ChancePercent, p.AssignedTo, p.NextAction, nullTime(p.Deadline), nullTime(p.QuoteDate),
		p.DecisionMaker, p.Notes, p.UserID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProspectRepository) ListByOwner(ctx context.Context, userID int64) ([]entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prospects := []entity.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, *p)
	}
	return prospects, rows.Err()
}

func (r *ProspectRepository) FindByID(ctx context.Context, id, userID int64) (*entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = $1 AND user_id = $2`

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update is the status transition recorder. The row is locked, the stored
// status compared against the incoming one, and when a previously non-empty
// status changed the update stamps status_date and appends the history row,
// all inside one transaction. A crash can never leave a transition without
// its audit record.
func (r *ProspectRepository) Update(ctx context.Context, p *entity.Prospect, historyNotes string) (*entity.StatusTransition, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM prospects WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		p.ID, p.UserID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// First-ever status assignment is not a transition.
	transitioned := current.Valid && current.String != "" && current.String != p.Status
	today := dateOnly(time.Now())

	query := `
		UPDATE prospects SET
			name = $1, contact_name = NULLIF($2, ''), email = NULLIF($3, ''), phone = NULLIF($4, ''),
			status = $5, setup_amount = $6, monthly_amount = $7, annual_amount = $8,
			training_amount = $9, material_amount = $10, chance_percent = $11,
			assigned_to = NULLIF($12, ''), next_action = NULLIF($13, ''), deadline = $14,
			quote_date = $15, decision_maker = NULLIF($16, ''), notes = NULLIF($17, ''),
			status_date = CASE WHEN $18 THEN $19 ELSE status_date END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $20 AND user_id = $21
	`

	_, err = tx.ExecContext(ctx, query,
		p.Name, p.ContactName, p.Email, p.Phone,
		p.Status, p.SetupAmount, p.MonthlyAmount, p.AnnualAmount,
		p.TrainingAmount, p.MaterialAmount, p.ChancePercent,
		p.AssignedTo, p.NextAction, nullTime(p.Deadline),
		nullTime(p.QuoteDate), p.DecisionMaker, p.Notes,
		transitioned, today,
		p.ID, p.UserID,
	)
	if err != nil {
		return nil, err
	}

	var transition *entity.StatusTransition
	if transitioned {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO status_history (prospect_id, old_status, new_status, status_date, notes, user_id)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
			p.ID, current.String, p.Status, today, historyNotes, p.UserID,
		)
		if err != nil {
			return nil, err
		}
		transition = &entity.StatusTransition{
			OldStatus: current.String,
			NewStatus: p.Status,
			Date:      today,
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return transition, nil
}

// Delete relies on the ON DELETE CASCADE constraints: interlocutors, next
// actions, activities and status history go with the prospect.
func (r *ProspectRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM prospects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *ProspectRepository) SetPDFKey(ctx context.Context, id, userID int64, key string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE prospects SET pdf_key = NULLIF($1, ''), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND user_id = $3`,
		key, id, userID,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (*entity.Prospect, error) {
	var p entity.Prospect
	var statusDate, deadline, quoteDate sql.NullTime

	err := row.Scan(
		&p.ID, &p.Name, &p.ContactName, &p.Email, &p.Phone,
		&p.Status, &statusDate,
		&p.SetupAmount, &p.MonthlyAmount, &p.AnnualAmount,
		&p.TrainingAmount, &p.MaterialAmount, &p.ChancePercent,
		&p.AssignedTo, &p.NextAction, &deadline, &quoteDate,
		&p.DecisionMaker, &p.Notes, &p.PDFKey,
		&p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.StatusDate = timePtr(statusDate)
	p.Deadline = timePtr(deadline)
	p.QuoteDate = timePtr(quoteDate)
	return &p, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
