package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "phone", "status", "created_at", "updated_at"}
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "a@x.com", "hash", "555-0100").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "alice", "a@x.com", "hash", "555-0100", "active", now, nil))

	user, err := repo.Create(context.Background(), "alice", "a@x.com", "hash", "555-0100")
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.Equal(t, StatusActive, user.Status)

	mock.ExpectQuery("SELECT id, username, email, password_hash, phone, status, created_at, updated_at").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "alice", "a@x.com", "hash", "555-0100", "active", now, nil))

	got, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistenceChecks(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.UserExists(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err = repo.EmailExists(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithRoles(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := append(userColumns(), "roles")

	mock.ExpectQuery("LEFT JOIN user_roles").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "alice", "a@x.com", "hash", "", "active", now, nil, []byte(`["admin","member"]`)).
			AddRow(2, "bob", "b@x.com", "hash", "", "active", now, nil, []byte(`[]`)))

	users, err := repo.List(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, []string{"admin", "member"}, users[0].Roles)
	require.Empty(t, users[1].Roles)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleAssignment(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT id, name, description, active").
		WithArgs("trainer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "active", "created_at", "updated_at"}).
			AddRow(2, "trainer", "Runs classes", true, time.Now(), nil))

	role, err := repo.FindRoleByName(context.Background(), "trainer")
	require.NoError(t, err)
	require.Equal(t, 2, role.ID)

	mock.ExpectExec("INSERT INTO user_roles").
		WithArgs(4, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AssignRole(context.Background(), 4, 2))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2")).
		WithArgs(4, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RevokeRole(context.Background(), 4, 2))

	require.NoError(t, mock.ExpectationsWereMet())
}
