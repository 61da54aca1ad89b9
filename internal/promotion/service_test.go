package promotion

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

func (m *MockRepo) Create(ctx context.Context, issuerID int, req CreateRequest) (*Promotion, error) {
	args := m.Called(ctx, issuerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Promotion, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Promotion), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id int, req UpdateRequest) (*Promotion, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Promotion), args.Error(1)
}

func (m *MockRepo) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var start = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func TestCreate_RecordsIssuer(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	req := CreateRequest{Name: "Summer", Discount: 25, Audience: "members", Application: "membership", StartDate: start}
	repo.On("Create", mock.Anything, 1, req).Return(&Promotion{ID: 1, IssuerID: 1, Name: "Summer", Discount: 25}, nil)

	promo, err := svc.Create(context.Background(), &auth.Claims{UserID: 1, Roles: []string{auth.RoleAdmin}}, req)
	require.NoError(t, err)
	assert.Equal(t, 1, promo.IssuerID)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc := NewService(new(MockRepo))

	end := start.AddDate(0, -1, 0)
	req := CreateRequest{Name: "Bad", Audience: "everyone", Application: "class", StartDate: start, EndDate: &end}

	_, err := svc.Create(context.Background(), &auth.Claims{UserID: 1}, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
}

func TestUpdate_EndBeforeExistingStart(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindByID", mock.Anything, 1).Return(&Promotion{ID: 1, StartDate: start}, nil)

	end := start.AddDate(0, 0, -1)
	_, err := svc.Update(context.Background(), 1, UpdateRequest{EndDate: &end})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("FindByID", mock.Anything, 404).Return(nil, sql.ErrNoRows)

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestDelete(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("Delete", mock.Anything, 1).Return(true, nil)
	require.NoError(t, svc.Delete(context.Background(), 1))

	repo.On("Delete", mock.Anything, 2).Return(false, nil)
	err := svc.Delete(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}
