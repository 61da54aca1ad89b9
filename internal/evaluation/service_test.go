package evaluation

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
	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateService(ctx context.Context, req CreateServiceRequest) (*GymService, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymService), args.Error(1)
}

func (m *MockRepo) FindService(ctx context.Context, id int) (*GymService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymService), args.Error(1)
}

func (m *MockRepo) ListServices(ctx context.Context, limit, offset int) ([]GymService, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GymService), args.Error(1)
}

func (m *MockRepo) SetServiceActive(ctx context.Context, id int, active bool) (bool, error) {
	args := m.Called(ctx, id, active)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) Create(ctx context.Context, userID, serviceID, rating int, comment string) (*Evaluation, error) {
	args := m.Called(ctx, userID, serviceID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Evaluation), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Evaluation), args.Error(1)
}

func (m *MockRepo) ListByUser(ctx context.Context, userID, limit, offset int) ([]Evaluation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Evaluation), args.Error(1)
}

func (m *MockRepo) ListByService(ctx context.Context, serviceID, limit, offset int) ([]Evaluation, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Evaluation), args.Error(1)
}

func (m *MockRepo) Stats(ctx context.Context, serviceID int) (*ServiceStats, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ServiceStats), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id int, rating int, comment string) (*Evaluation, error) {
	args := m.Called(ctx, id, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Evaluation), args.Error(1)
}

func (m *MockRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func memberClaims(id int) *auth.Claims {
	return &auth.Claims{UserID: id, Roles: []string{auth.RoleMember}}
}

func TestCreate_InactiveService(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindService", mock.Anything, 2).Return(&GymService{ID: 2, Name: "Spa", Active: false}, nil)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{ServiceID: 2, Rating: 4})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindService", mock.Anything, 2).Return(&GymService{ID: 2, Name: "Spa", Active: true}, nil)
	repo.On("Create", mock.Anything, 5, 2, 4, "great").Return(&Evaluation{ID: 1, UserID: 5, ServiceID: 2, Rating: 4}, nil)

	ev, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{ServiceID: 2, Rating: 4, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 4, ev.Rating)
}

func TestCreate_ServiceNotFound(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindService", mock.Anything, 404).Return(nil, sql.ErrNoRows)

	_, err := svc.Create(context.Background(), memberClaims(5), CreateRequest{ServiceID: 404, Rating: 3})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestGet_OwnerOnly(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindByID", mock.Anything, 1).Return(&Evaluation{ID: 1, UserID: 5, Rating: 4}, nil)

	_, err := svc.Get(context.Background(), memberClaims(6), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusOf(err))

	ev, err := svc.Get(context.Background(), &auth.Claims{UserID: 2, Roles: []string{auth.RoleAdmin}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ev.ID)
}

func TestUpdate_PatchesOnlySuppliedFields(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindByID", mock.Anything, 1).Return(&Evaluation{ID: 1, UserID: 5, Rating: 4, Comment: "ok"}, nil)
	repo.On("Update", mock.Anything, 1, 5, "ok").Return(&Evaluation{ID: 1, UserID: 5, Rating: 5, Comment: "ok"}, nil)

	rating := 5
	ev, err := svc.Update(context.Background(), memberClaims(5), 1, UpdateRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, ev.Rating)
	repo.AssertExpectations(t)
}

func TestStats_UnknownService(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindService", mock.Anything, 9).Return(nil, sql.ErrNoRows)

	_, err := svc.Stats(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}
