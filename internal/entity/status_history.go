package entity

import "time"

// StatusHistoryEntry: immutable audit record of a prospect status change.
// Append-only, only removed through the prospect cascade delete.
type StatusHistoryEntry struct {
	ID         int64     `json:"id"`
	ProspectID int64     `json:"prospect_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	StatusDate time.Time `json:"status_date"`
	Notes      string    `json:"notes"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
