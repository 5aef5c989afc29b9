package entity

import (
	"errors"
	"time"
)

// DefaultStatus is the status stamped on prospects created without one.
const DefaultStatus = "Prospection"

// DefaultChancePercent applied when the payload omits chance_percent.
const DefaultChancePercent = 20

// Prospect: sales opportunity, the central entity. Status is opaque text,
// the pipeline vocabulary lives in the frontend.
type Prospect struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`

	Status string `json:"status"`
	// Date of the last status transition, date granularity.
	StatusDate *time.Time `json:"status_date"`

	SetupAmount    float64 `json:"setup_amount"`
	MonthlyAmount  float64 `json:"monthly_amount"`
	AnnualAmount   float64 `json:"annual_amount"`
	TrainingAmount float64 `json:"training_amount"`
	MaterialAmount float64 `json:"material_amount"`
	ChancePercent  int     `json:"chance_percent"`

	AssignedTo    string     `json:"assigned_to"`
	NextAction    string     `json:"next_action"`
	Deadline      *time.Time `json:"deadline"`
	QuoteDate     *time.Time `json:"quote_date"`
	DecisionMaker string     `json:"decision_maker"`
	Notes         string     `json:"notes"`

	// Object-store key of the attached PDF, empty when none.
	PDFKey string `json:"pdf_key,omitempty"`

	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Prospect) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.ChancePercent < 0 || p.ChancePercent > 100 {
		return errors.New("chance_percent must be between 0 and 100")
	}
	if p.SetupAmount < 0 || p.MonthlyAmount < 0 || p.AnnualAmount < 0 ||
		p.TrainingAmount < 0 || p.MaterialAmount < 0 {
		return errors.New("amounts must not be negative")
	}
	return nil
}

// StatusTransition is produced by ProspectRepository.Update when the update
// changed a previously non-empty status.
type StatusTransition struct {
	OldStatus string
	NewStatus string
	Date      time.Time
}
