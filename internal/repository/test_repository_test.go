package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

func TestTestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectQuery(`INSERT INTO api_tests`).
		WithArgs(1, "ping", "health check", "https://example.test/ping", "GET", "{}", "", "[]").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := repo.Create(context.Background(), &model.APITest{
		OwnerUserID:    1,
		Name:           "ping",
		Description:    "health check",
		EndpointURL:    "https://example.test/ping",
		HTTPMethod:     "GET",
		RequestHeaders: "{}",
		Tags:           "[]",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM api_tests`).WithArgs(404).WillReturnError(sql.ErrNoRows)

	test, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, test)
}

func TestTestList_JoinsOwnerName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "owner_user_id", "name", "description", "endpoint_url", "http_method",
		"request_headers", "request_body", "tags", "created_at", "owner_name",
	}).
		AddRow(2, 1, "checkout", "", "https://example.test/checkout", "POST", "{}", `{"cart":1}`, "[]", now, "alice").
		AddRow(1, 1, "ping", "", "https://example.test/ping", "GET", "{}", "", "[]", now, "alice")

	mock.ExpectQuery(`SELECT .+ FROM api_tests at\s+JOIN users u`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	tests, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, "checkout", tests[0].Name)
	assert.Equal(t, "alice", tests[0].OwnerName)
}

func TestTestCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM api_tests`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(34))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 34, count)
}

func TestTestDeleteCascade(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM response_logs`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM performance_runs`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM test_runs`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM api_tests`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTestDeleteCascade_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM response_logs`).WithArgs(5).WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
