package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/queue"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

func TestUpdateProspectPublishesTransitionEvent(t *testing.T) {
	ctx := context.Background()

	prospects := new(MockProspectRepository)
	events := new(MockEventPublisher)

	transition := &entity.StatusTransition{
		OldStatus: "Prospection",
		NewStatus: "Proposition envoyée",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	prospects.On("Update", ctx, mock.Anything, "relance faite").Return(transition, nil)
	events.On("PublishStatusChanged", ctx, mock.MatchedBy(func(p queue.StatusChangedPayload) bool {
		return p.ProspectID == 42 &&
			p.OldStatus == "Prospection" &&
			p.NewStatus == "Proposition envoyée" &&
			p.StatusDate == "2026-03-10" &&
			p.UserName == "Claire"
	})).Return(nil)

	uc := usecase.NewUpdateProspectUseCase(prospects, events)

	input := usecase.ProspectInput{
		Name:   "Acme SARL",
		Status: "Proposition envoyée",
		Notes:  "relance faite",
	}

	got, err := uc.Execute(ctx, 42, 7, "Claire", input)

	assert.NoError(t, err)
	assert.Equal(t, transition, got)
	events.AssertExpectations(t)
}

func TestUpdateProspectNoTransitionNoEvent(t *testing.T) {
	ctx := context.Background()

	prospects := new(MockProspectRepository)
	events := new(MockEventPublisher)

	prospects.On("Update", ctx, mock.Anything, "").Return(nil, nil)

	uc := usecase.NewUpdateProspectUseCase(prospects, events)

	got, err := uc.Execute(ctx, 42, 7, "Claire", usecase.ProspectInput{
		Name:   "Acme SARL",
		Status: "Prospection",
	})

	assert.NoError(t, err)
	assert.Nil(t, got)
	events.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestUpdateProspectNotFound(t *testing.T) {
	ctx := context.Background()

	prospects := new(MockProspectRepository)
	prospects.On("Update", ctx, mock.Anything, "").Return(nil, entity.ErrNotFound)

	uc := usecase.NewUpdateProspectUseCase(prospects, nil)

	_, err := uc.Execute(ctx, 999, 7, "Claire", usecase.ProspectInput{Name: "Acme SARL"})

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdateProspectFailedPublishDoesNotFailUpdate(t *testing.T) {
	ctx := context.Background()

	prospects := new(MockProspectRepository)
	events := new(MockEventPublisher)

	transition := &entity.StatusTransition{
		OldStatus: "Prospection",
		NewStatus: "Gagné",
		Date:      time.Now(),
	}
	prospects.On("Update", ctx, mock.Anything, "").Return(transition, nil)
	events.On("PublishStatusChanged", ctx, mock.Anything).Return(assert.AnError)

	uc := usecase.NewUpdateProspectUseCase(prospects, events)

	got, err := uc.Execute(ctx, 42, 7, "Claire", usecase.ProspectInput{
		Name:   "Acme SARL",
		Status: "Gagné",
	})

	assert.NoError(t, err)
	assert.Equal(t, transition, got)
}

func TestUpdateProspectRejectsInvalidInput(t *testing.T) {
	prospects := new(MockProspectRepository)
	uc := usecase.NewUpdateProspectUseCase(prospects, nil)

	bad := -10
	_, err := uc.Execute(context.Background(), 42, 7, "Claire", usecase.ProspectInput{
		Name:          "Acme SARL",
		ChancePercent: &bad,
	})

	assert.True(t, usecase.IsDomainError(err))
	prospects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
