package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

func TestAdminCreateUserKeepsHandoverCopy(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	users.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewUserAdminUseCase(users, nil)

	user, err := uc.Create(ctx, usecase.CreateUserInput{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New Person",
	})

	assert.NoError(t, err)
	assert.Equal(t, "secret123", user.TempPassword)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestAdminDeleteRefusesAdminTarget(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	users.On("FindByID", ctx, int64(1)).
		Return(&entity.User{ID: 1, Email: "boss@example.com", Role: entity.RoleAdmin}, nil)

	uc := usecase.NewUserAdminUseCase(users, nil)

	err := uc.Delete(ctx, 1)

	assert.True(t, usecase.IsDomainError(err))
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminDeleteRegularUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	users.On("FindByID", ctx, int64(8)).
		Return(&entity.User{ID: 8, Email: "gone@example.com", Role: entity.RoleUser}, nil)
	users.On("Delete", ctx, int64(8)).Return(nil)

	uc := usecase.NewUserAdminUseCase(users, nil)

	assert.NoError(t, uc.Delete(ctx, 8))
	users.AssertExpectations(t)
}

func TestTempPasswordStoresAndMails(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	mailer := new(MockMailService)

	var stored string
	users.On("UpdatePassword", ctx, int64(8), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.String(3) }).
		Return(nil)
	users.On("FindByID", ctx, int64(8)).
		Return(&entity.User{ID: 8, Email: "gone@example.com", Name: "Someone"}, nil)
	mailer.On("SendTempPassword", "gone@example.com", "Someone", mock.Anything).Return(nil)

	uc := usecase.NewUserAdminUseCase(users, mailer)

	password, err := uc.TempPassword(ctx, 8)

	assert.NoError(t, err)
	assert.Len(t, password, 10)
	assert.Equal(t, password, stored)
	// Ambiguous glyphs are excluded from generated passwords.
	assert.False(t, strings.ContainsAny(password, "0O1lIi"))
	mailer.AssertExpectations(t)
}

func TestTempPasswordUnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	users.On("UpdatePassword", ctx, int64(99), mock.Anything, mock.Anything).
		Return(entity.ErrNotFound)

	uc := usecase.NewUserAdminUseCase(users, nil)

	_, err := uc.TempPassword(ctx, 99)

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSetPasswordRequiresValue(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(new(MockUserRepository), nil)

	err := uc.SetPassword(context.Background(), 8, "")

	assert.True(t, usecase.IsDomainError(err))
}
