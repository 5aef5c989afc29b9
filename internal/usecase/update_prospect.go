package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/queue"
)

// UpdateProspectUseCase wraps the transactional transition recorder in the
// prospect repository and fans the result out: the database work is atomic,
// everything after the commit (event, notification) is best-effort.
type UpdateProspectUseCase struct {
	Prospects entity.ProspectRepository
	Events    EventPublisher
}

func NewUpdateProspectUseCase(prospects entity.ProspectRepository, events EventPublisher) *UpdateProspectUseCase {
	return &UpdateProspectUseCase{Prospects: prospects, Events: events}
}

func (uc *UpdateProspectUseCase) Execute(ctx context.Context, id, userID int64, userName string, input ProspectInput) (*entity.StatusTransition, error) {
	if errs := ValidateProspectInput(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	p := input.ToEntity()
	p.ID = id
	p.UserID = userID

	transition, err := uc.Prospects.Update(ctx, p, input.Notes)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update prospect"}
	}

	if transition != nil && uc.Events != nil {
		payload := queue.StatusChangedPayload{
			ProspectID:   p.ID,
			ProspectName: p.Name,
			OldStatus:    transition.OldStatus,
			NewStatus:    transition.NewStatus,
			StatusDate:   transition.Date.Format("2006-01-02"),
			Notes:        input.Notes,
			UserName:     userName,
		}
		if err := uc.Events.PublishStatusChanged(ctx, payload); err != nil {
			log.Printf("⚠️ status-change event dropped for prospect %d: %v", p.ID, err)
		}
	}

	return transition, nil
}
