package membership

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, req CreateRequest) (*Membership, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockRepo) FindDetails(ctx context.Context, id int) (*MembershipDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MembershipDetails), args.Error(1)
}

func (m *MockRepo) FindActiveByUser(ctx context.Context, userID int) (*Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockRepo) HasActiveMembership(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, status Status, limit, offset int) ([]MembershipDetails, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MembershipDetails), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id int, req UpdateRequest) (*Membership, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Membership), args.Error(1)
}

func (m *MockRepo) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockUsers struct{ mock.Mock }

func (m *MockUsers) UserExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func validCreate() CreateRequest {
	return CreateRequest{
		UserID: 5, Code: "GYM-0001", Type: "individual", Service: "full",
		Plan: "monthly", Level: "new", StartDate: start,
	}
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockRepo)
	users := new(MockUsers)
	svc := NewService(repo, users)

	req := validCreate()
	users.On("UserExists", mock.Anything, 5).Return(true, nil)
	repo.On("CodeExists", mock.Anything, "GYM-0001").Return(false, nil)
	repo.On("HasActiveMembership", mock.Anything, 5).Return(false, nil)
	repo.On("Create", mock.Anything, req).Return(&Membership{ID: 1, UserID: 5, Code: "GYM-0001", Type: "individual", Status: StatusActive}, nil)

	ms, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, ms.Status)
	repo.AssertExpectations(t)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc := NewService(new(MockRepo), new(MockUsers))

	req := validCreate()
	end := start.AddDate(0, 0, -1)
	req.EndDate = &end

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := new(MockRepo)
	users := new(MockUsers)
	svc := NewService(repo, users)

	users.On("UserExists", mock.Anything, 5).Return(true, nil)
	repo.On("CodeExists", mock.Anything, "GYM-0001").Return(true, nil)

	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
}

func TestCreate_SecondActiveMembership(t *testing.T) {
	repo := new(MockRepo)
	users := new(MockUsers)
	svc := NewService(repo, users)

	users.On("UserExists", mock.Anything, 5).Return(true, nil)
	repo.On("CodeExists", mock.Anything, "GYM-0001").Return(false, nil)
	repo.On("HasActiveMembership", mock.Anything, 5).Return(true, nil)

	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_UnknownUser(t *testing.T) {
	users := new(MockUsers)
	svc := NewService(new(MockRepo), users)

	users.On("UserExists", mock.Anything, 5).Return(false, nil)

	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestGet_OwnershipEnforced(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, new(MockUsers))

	repo.On("FindByID", mock.Anything, 1).Return(&Membership{ID: 1, UserID: 5}, nil)

	_, err := svc.Get(context.Background(), &auth.Claims{UserID: 6, Roles: []string{auth.RoleMember}}, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))

	ms, err := svc.Get(context.Background(), &auth.Claims{UserID: 5, Roles: []string{auth.RoleMember}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ms.ID)
}

func TestGetMine_NoActive(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, new(MockUsers))

	repo.On("FindActiveByUser", mock.Anything, 5).Return(nil, sql.ErrNoRows)

	_, err := svc.GetMine(context.Background(), &auth.Claims{UserID: 5})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestUpdate_ReactivationBlockedByExistingActive(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, new(MockUsers))

	repo.On("FindByID", mock.Anything, 2).Return(&Membership{ID: 2, UserID: 5, StartDate: start, Status: StatusInactive}, nil)
	repo.On("HasActiveMembership", mock.Anything, 5).Return(true, nil)

	status := StatusActive
	_, err := svc.Update(context.Background(), 2, UpdateRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, new(MockUsers))

	repo.On("Delete", mock.Anything, 9).Return(false, nil)

	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}
