package entity

import (
	"errors"
	"time"
)

// Interlocutor: a named contact person attached to a prospect. At most one
// interlocutor per prospect carries IsPrincipal=true, the repository enforces
// the exclusivity transactionally.
type Interlocutor struct {
	ID         int64  `json:"id"`
	ProspectID int64  `json:"prospect_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	IsPrincipal     bool `json:"is_principal"`
	IsDecisionMaker bool `json:"is_decision_maker"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Interlocutor) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
