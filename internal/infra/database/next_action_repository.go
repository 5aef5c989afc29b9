package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type NextActionRepository struct {
	DB *sql.DB
}

func NewNextActionRepository(db *sql.DB) *NextActionRepository {
	return &NextActionRepository{DB: db}
}

func (r *NextActionRepository) Create(ctx context.Context, a *entity.NextAction) error {
	query := `
		INSERT INTO next_actions (prospect_id, action_type, planned_date, actor, user_id)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(ctx, query,
		a.ProspectID, a.ActionType, nullTime(a.PlannedDate), a.Actor, a.UserID,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *NextActionRepository) ListByProspect(ctx context.Context, prospectID, userID int64) ([]entity.NextAction, error) {
	query := `
		SELECT id, prospect_id, COALESCE(action_type, ''), planned_date, COALESCE(actor, ''),
		       completed, completed_date, COALESCE(completed_note, ''), COALESCE(user_id, 0), created_at
		FROM next_actions
		WHERE prospect_id = $1 AND user_id = $2
		ORDER BY planned_date ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, prospectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actions := []entity.NextAction{}
	for rows.Next() {
		var a entity.NextAction
		var planned, completedAt sql.NullTime
		if err := rows.Scan(
			&a.ID, &a.ProspectID, &a.ActionType, &planned, &a.Actor,
			&a.Completed, &completedAt, &a.CompletedNote, &a.UserID, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.PlannedDate = timePtr(planned)
		a.CompletedDate = timePtr(completedAt)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// Update replaces the mutable fields. completed_date follows the completed
// flag: stamped with today's date when it flips on, cleared when it flips off.
func (r *NextActionRepository) Update(ctx context.Context, a *entity.NextAction) error {
	var completedDate sql.NullTime
	if a.Completed {
		completedDate = sql.NullTime{Time: dateOnly(time.Now()), Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE next_actions
		SET action_type = NULLIF($1, ''), planned_date = $2, actor = NULLIF($3, ''),
		    completed = $4, completed_date = $5, completed_note = NULLIF($6, '')
		WHERE id = $7 AND user_id = $8
	`,
		a.ActionType, nullTime(a.PlannedDate), a.Actor,
		a.Completed, completedDate, a.CompletedNote,
		a.ID, a.UserID,
	)
	if err != nil {
		return err
	}
	a.CompletedDate = timePtr(completedDate)
	return requireRows(res)
}

func (r *NextActionRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM next_actions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRows(res)
}
