package usecase

import (
	"time"

	"github.com/xavierca1/pipeline-crm/internal/entity"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// ProspectInput is shared by create and update. chance_percent is a pointer
// so an absent field gets the historical default instead of zero.
type ProspectInput struct {
	Name           string  `json:"name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Status         string  `json:"status"`
	SetupAmount    float64 `json:"setup_amount"`
	MonthlyAmount  float64 `json:"monthly_amount"`
	AnnualAmount   float64 `json:"annual_amount"`
	TrainingAmount float64 `json:"training_amount"`
	MaterialAmount float64 `json:"material_amount"`
	ChancePercent  *int    `json:"chance_percent"`
	AssignedTo     string  `json:"assigned_to"`
	NextAction     string  `json:"next_action"`
	Deadline       *string `json:"deadline"`
	QuoteDate      *string `json:"quote_date"`
	DecisionMaker  string  `json:"decision_maker"`
	Notes          string  `json:"notes"`
}

func (in ProspectInput) ToEntity() *entity.Prospect {
	chance := entity.DefaultChancePercent
	if in.ChancePercent != nil {
		chance = *in.ChancePercent
	}

	status := in.Status
	if status == "" {
		status = entity.DefaultStatus
	}

	return &entity.Prospect{
		Name:           in.Name,
		ContactName:    in.ContactName,
		Email:          in.Email,
		Phone:          in.Phone,
		Status:         status,
		SetupAmount:    in.SetupAmount,
		MonthlyAmount:  in.MonthlyAmount,
		AnnualAmount:   in.AnnualAmount,
		TrainingAmount: in.TrainingAmount,
		MaterialAmount: in.MaterialAmount,
		ChancePercent:  chance,
		AssignedTo:     in.AssignedTo,
		NextAction:     in.NextAction,
		Deadline:       parseDate(in.Deadline),
		QuoteDate:      parseDate(in.QuoteDate),
		DecisionMaker:  in.DecisionMaker,
		Notes:          in.Notes,
	}
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
