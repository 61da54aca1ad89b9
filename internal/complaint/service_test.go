package complaint

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/class"
	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, userID int, req CreateRequest) (*Complaint, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Complaint), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Complaint), args.Error(1)
}

func (m *MockRepo) FindDetails(ctx context.Context, id int) (*ComplaintDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ComplaintDetails), args.Error(1)
}

func (m *MockRepo) ListByUser(ctx context.Context, userID, limit, offset int) ([]Complaint, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Complaint), args.Error(1)
}

func (m *MockRepo) ListByTrainer(ctx context.Context, trainerID, limit, offset int) ([]Complaint, error) {
	args := m.Called(ctx, trainerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Complaint), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, limit, offset int) ([]ComplaintDetails, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ComplaintDetails), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id, rating int, comment string) (*Complaint, error) {
	args := m.Called(ctx, id, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Complaint), args.Error(1)
}

func (m *MockRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockUsers struct{ mock.Mock }

func (m *MockUsers) UserExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) RolesOf(ctx context.Context, userID int) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockClasses struct{ mock.Mock }

func (m *MockClasses) FindByID(ctx context.Context, id int) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func memberClaims(id int) *auth.Claims {
	return &auth.Claims{UserID: id, Roles: []string{auth.RoleMember}}
}

func trainerClaims(id int) *auth.Claims {
	return &auth.Claims{UserID: id, Roles: []string{auth.RoleTrainer}}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: 1, Roles: []string{auth.RoleAdmin}}
}

func newTestService() (Service, *MockRepo, *MockUsers, *MockClasses) {
	repo := new(MockRepo)
	users := new(MockUsers)
	classes := new(MockClasses)
	return NewService(repo, users, classes), repo, users, classes
}

func TestCreate_Success(t *testing.T) {
	svc, repo, users, classes := newTestService()

	req := CreateRequest{TrainerID: 8, ClassID: 3, Rating: 2, Comment: "always late"}
	users.On("UserExists", mock.Anything, 8).Return(true, nil)
	users.On("RolesOf", mock.Anything, 8).Return([]string{auth.RoleTrainer}, nil)
	classes.On("FindByID", mock.Anything, 3).Return(&class.Class{ID: 3, TrainerID: 8}, nil)
	repo.On("Create", mock.Anything, 5, req).Return(&Complaint{ID: 1, UserID: 5, TrainerID: 8, ClassID: 3, Rating: 2}, nil)

	cp, err := svc.Create(context.Background(), memberClaims(5), req)
	require.NoError(t, err)
	assert.Equal(t, 8, cp.TrainerID)
}

func TestCreate_TrainerNotFound(t *testing.T) {
	svc, repo, users, _ := newTestService()

	users.On("UserExists", mock.Anything, 99).Return(false, nil)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{TrainerID: 99, ClassID: 3, Rating: 1, Comment: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_TargetIsNotATrainer(t *testing.T) {
	svc, repo, users, _ := newTestService()

	users.On("UserExists", mock.Anything, 6).Return(true, nil)
	users.On("RolesOf", mock.Anything, 6).Return([]string{auth.RoleMember}, nil)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{TrainerID: 6, ClassID: 3, Rating: 1, Comment: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_ClassNotFound(t *testing.T) {
	svc, _, users, classes := newTestService()

	users.On("UserExists", mock.Anything, 8).Return(true, nil)
	users.On("RolesOf", mock.Anything, 8).Return([]string{auth.RoleTrainer}, nil)
	classes.On("FindByID", mock.Anything, 42).Return(nil, sql.ErrNoRows)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{TrainerID: 8, ClassID: 42, Rating: 1, Comment: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestCreate_ClassBelongsToAnotherTrainer(t *testing.T) {
	svc, repo, users, classes := newTestService()

	users.On("UserExists", mock.Anything, 8).Return(true, nil)
	users.On("RolesOf", mock.Anything, 8).Return([]string{auth.RoleTrainer}, nil)
	classes.On("FindByID", mock.Anything, 3).Return(&class.Class{ID: 3, TrainerID: 9}, nil)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{TrainerID: 8, ClassID: 3, Rating: 1, Comment: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
	repo.AssertNotCalled(t, "Create")
}

func TestGet_VisibleToAuthorTrainerAndAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("FindByID", mock.Anything, 1).Return(&Complaint{ID: 1, UserID: 5, TrainerID: 8}, nil)

	_, err := svc.Get(context.Background(), memberClaims(5), 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), trainerClaims(8), 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), adminClaims(), 1)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), memberClaims(6), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))
}

func TestUpdate_OnlyAuthor(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("FindByID", mock.Anything, 1).Return(&Complaint{ID: 1, UserID: 5, TrainerID: 8, Rating: 2, Comment: "old"}, nil)

	rating := 4
	_, err := svc.Update(context.Background(), trainerClaims(8), 1, UpdateRequest{Rating: &rating})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))

	// admins cannot rewrite someone else's complaint either
	_, err = svc.Update(context.Background(), adminClaims(), 1, UpdateRequest{Rating: &rating})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))
}

func TestUpdate_PatchesOnlySuppliedFields(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("FindByID", mock.Anything, 1).Return(&Complaint{ID: 1, UserID: 5, Rating: 2, Comment: "old"}, nil)
	repo.On("Update", mock.Anything, 1, 4, "old").Return(&Complaint{ID: 1, UserID: 5, Rating: 4, Comment: "old"}, nil)

	rating := 4
	cp, err := svc.Update(context.Background(), memberClaims(5), 1, UpdateRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, cp.Rating)
	assert.Equal(t, "old", cp.Comment)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("FindByID", mock.Anything, 1).Return(&Complaint{ID: 1, UserID: 5, TrainerID: 8}, nil)

	// the accused trainer cannot make it disappear
	err := svc.Delete(context.Background(), trainerClaims(8), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))

	repo.On("Delete", mock.Anything, 1).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), adminClaims(), 1))
}

func TestGet_NotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("FindByID", mock.Anything, 9).Return(nil, sql.ErrNoRows)

	_, err := svc.Get(context.Background(), memberClaims(5), 9)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}
