package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (prospect_id, activity_type, description, created_by, user_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id, activity_date
	`

	return r.DB.QueryRowContext(ctx, query,
		a.ProspectID, a.ActivityType, a.Description, a.CreatedBy, a.UserID,
	).Scan(&a.ID, &a.ActivityDate)
}

func (r *ActivityRepository) ListByProspect(ctx context.Context, prospectID, userID int64) ([]entity.Activity, error) {
	query := `
		SELECT id, prospect_id, COALESCE(activity_type, ''), COALESCE(description, ''),
		       activity_date, COALESCE(created_by, ''), COALESCE(user_id, 0)
		FROM activities
		WHERE prospect_id = $1 AND user_id = $2
		ORDER BY activity_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, prospectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []entity.Activity{}
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(
			&a.ID, &a.ProspectID, &a.ActivityType, &a.Description,
			&a.ActivityDate, &a.CreatedBy, &a.UserID,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
