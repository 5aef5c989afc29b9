package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/pipeline-crm/internal/entity"
	"github.com/xavierca1/pipeline-crm/internal/infra/database"
)

func prospectForUpdate() *entity.Prospect {
	return &entity.Prospect{
		ID:            42,
		UserID:        7,
		Name:          "Acme SARL",
		Status:        "Proposition envoyée",
		ChancePercent: 60,
	}
}

func TestUpdateRecordsTransitionWithHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM prospects").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Prospection"))
	mock.ExpectExec("UPDATE prospects SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO status_history").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := database.NewProspectRepository(db)
	transition, err := repo.Update(context.Background(), prospectForUpdate(), "relance faite")

	assert.NoError(t, err)
	assert.NotNil(t, transition)
	assert.Equal(t, "Prospection", transition.OldStatus)
	assert.Equal(t, "Proposition envoyée", transition.NewStatus)
	assert.Equal(t, time.UTC, transition.Date.Location())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSameStatusSkipsHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM prospects").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Proposition envoyée"))
	mock.ExpectExec("UPDATE prospects SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := database.NewProspectRepository(db)
	transition, err := repo.Update(context.Background(), prospectForUpdate(), "")

	assert.NoError(t, err)
	assert.Nil(t, transition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Setting the very first status is not a transition and leaves no history
// row behind.
func TestUpdateFirstStatusSkipsHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM prospects").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(nil))
	mock.ExpectExec("UPDATE prospects SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := database.NewProspectRepository(db)
	transition, err := repo.Update(context.Background(), prospectForUpdate(), "")

	assert.NoError(t, err)
	assert.Nil(t, transition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownProspect(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM prospects").
		WithArgs(int64(42), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	p := prospectForUpdate()
	p.UserID = 99

	repo := database.NewProspectRepository(db)
	_, err = repo.Update(context.Background(), p, "")

	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHistoryFailureAbortsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM prospects").
		WithArgs(int64(42), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Prospection"))
	mock.ExpectExec("UPDATE prospects SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO status_history").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := database.NewProspectRepository(db)
	_, err = repo.Update(context.Background(), prospectForUpdate(), "")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownProspect(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM prospects").
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := database.NewProspectRepository(db)

	assert.ErrorIs(t, repo.Delete(context.Background(), 42, 7), entity.ErrNotFound)
}
