package entity

import "time"

// NextAction: a scheduled follow-up task tied to a prospect.
type NextAction struct {
	ID          int64      `json:"id"`
	ProspectID  int64      `json:"prospect_id"`
	ActionType  string     `json:"action_type"`
	PlannedDate *time.Time `json:"planned_date"`
	Actor       string     `json:"actor"`

	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completed_date"`
	CompletedNote string     `json:"completed_note"`

	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
