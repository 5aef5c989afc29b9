package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/database"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := database.NewUserRepository(db)
	err = repo.Create(context.Background(), &entity.User{
		Email:    "claire@example.com",
		Password: "hash",
		Name:     "Claire",
		Role:     entity.RoleUser,
	})

	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
}

func TestCreateUserAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	u := &entity.User{Email: "claire@example.com", Password: "hash", Name: "Claire", Role: entity.RoleUser}

	repo := database.NewUserRepository(db)
	assert.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
}

func TestFindByEmailUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "temp_password", "name", "role", "created_at"}))

	repo := database.NewUserRepository(db)
	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdatePasswordUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET password").
		WithArgs("hash", "plain", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := database.NewUserRepository(db)

	assert.ErrorIs(t, repo.UpdatePassword(context.Background(), 99, "hash", "plain"), entity.ErrNotFound)
}
