package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

// StatusHistoryRepository is read-only: history rows are written by
// ProspectRepository.Update inside the transition transaction and only ever
// disappear through the prospect cascade delete.
type StatusHistoryRepository struct {
	DB *sql.DB
}

func NewStatusHistoryRepository(db *sql.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{DB: db}
}

func (r *StatusHistoryRepository) ListByProspect(ctx context.Context, prospectID, userID int64) ([]entity.StatusHistoryEntry, error) {
	query := `
		SELECT id, prospect_id, COALESCE(old_status, ''), COALESCE(new_status, ''),
		       status_date, COALESCE(notes, ''), COALESCE(user_id, 0), created_at
		FROM status_history
		WHERE prospect_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, prospectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.StatusHistoryEntry{}
	for rows.Next() {
		var e entity.StatusHistoryEntry
		var statusDate sql.NullTime
		if err := rows.Scan(
			&e.ID, &e.ProspectID, &e.OldStatus, &e.NewStatus,
			&statusDate, &e.Notes, &e.UserID, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if statusDate.Valid {
			e.StatusDate = statusDate.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
