package person

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymcore/internal/auth"
	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) FindByUserID(ctx context.Context, userID int) (*Person, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Person), args.Error(1)
}

func (m *MockRepo) Upsert(ctx context.Context, userID int, req UpsertRequest) (*Person, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Person), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, limit, offset int) ([]Person, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Person), args.Error(1)
}

func (m *MockRepo) DeleteByUserID(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func newTestRouter(repo Repository, claims *auth.Claims) *gin.Engine {
	h := NewHandler(repo)
	router := gin.New()

	group := router.Group("/", auth.WithClaims(claims))
	group.GET("/persons/me", h.GetMine)
	group.PUT("/persons/me", h.UpsertMine)
	group.DELETE("/persons/me", h.DeleteMine)
	group.GET("/admin/persons/:userID", h.GetByUser)
	return router
}

func TestGetMine(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 3})

	repo.On("FindByUserID", mock.Anything, 3).Return(&Person{ID: 1, UserID: 3, FirstName: "Jane"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/persons/me", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Jane", got.FirstName)
}

func TestGetMine_NoProfile(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 3})

	repo.On("FindByUserID", mock.Anything, 3).Return(nil, sql.ErrNoRows)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/persons/me", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpsertMine(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 3})

	repo.On("Upsert", mock.Anything, 3, mock.Anything).Return(&Person{ID: 1, UserID: 3, FirstName: "Jane", LastName: "Doe"}, nil)

	body, _ := json.Marshal(UpsertRequest{FirstName: "Jane", LastName: "Doe", Gender: GenderFemale})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/persons/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestUpsertMine_InvalidBloodType(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/persons/me",
		bytes.NewBufferString(`{"first_name":"Jane","last_name":"Doe","blood_type":"Z+"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Upsert")
}

func TestDeleteMine_NoProfile(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 3})

	repo.On("DeleteByUserID", mock.Anything, 3).Return(false, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/persons/me", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetByUser(t *testing.T) {
	repo := new(MockRepo)
	router := newTestRouter(repo, &auth.Claims{UserID: 1, Roles: []string{auth.RoleAdmin}})

	repo.On("FindByUserID", mock.Anything, 9).Return(&Person{ID: 4, UserID: 9, FirstName: "Bob"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/persons/9", nil))

	require.Equal(t, http.StatusOK, w.Code)
}
