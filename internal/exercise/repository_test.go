package exercise

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"gymcore/internal/api"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlx.BindDriver("sqlmock", sqlx.DOLLAR)
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func exerciseColumnsList() []string {
	return []string{"id", "name", "category", "description", "created_at", "updated_at"}
}

func TestCreateExercise(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO exercises").
		WithArgs("Deadlift", "strength", "").
		WillReturnRows(sqlmock.NewRows(exerciseColumnsList()).
			AddRow(1, "Deadlift", "strength", "", time.Now(), nil))

	ex, err := repo.Create(context.Background(), CreateRequest{Name: "Deadlift", Category: "strength"})
	require.NoError(t, err)
	require.Equal(t, 1, ex.ID)
}

func TestCreateExercise_DuplicateName(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO exercises").
		WithArgs("Deadlift", "strength", "").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), CreateRequest{Name: "Deadlift", Category: "strength"})
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, api.StatusOf(err))
}

func TestListExercises_ByCategory(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("FROM exercises WHERE category").
		WithArgs("cardio", 50, 0).
		WillReturnRows(sqlmock.NewRows(exerciseColumnsList()).
			AddRow(1, "Burpees", "cardio", "", time.Now(), nil).
			AddRow(2, "Rowing", "cardio", "", time.Now(), nil))

	exercises, err := repo.List(context.Background(), "cardio", 50, 0)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
}

func TestExistAll(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM exercises WHERE id IN ($1, $2)")).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistAll(context.Background(), []int{1, 2})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.ExistAll(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, ok)
}
