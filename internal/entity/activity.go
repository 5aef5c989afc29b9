package entity

import "time"

// Activity: free-form log line on a prospect (call made, mail sent, ...).
type Activity struct {
	ID           int64     `json:"id"`
	ProspectID   int64     `json:"prospect_id"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	ActivityDate time.Time `json:"activity_date"`
	CreatedBy    string    `json:"created_by"`
	UserID       int64     `json:"user_id"`
}
