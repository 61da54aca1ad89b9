package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserFinder struct {
	exists bool
	err    error
}

func (f *fakeUserFinder) UserExists(ctx context.Context, id int) (bool, error) {
	return f.exists, f.err
}

func newProtectedRouter(finder UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware("test-secret", finder))
	router.GET("/protected", func(c *gin.Context) {
		claims, ok := FromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_ValidToken(t *testing.T) {
	router := newProtectedRouter(&fakeUserFinder{exists: true})

	token, err := GenerateToken(1, "alice", "alice@example.com", []string{RoleMember}, "test-secret")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	router := newProtectedRouter(&fakeUserFinder{exists: true})

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_BadScheme(t *testing.T) {
	router := newProtectedRouter(&fakeUserFinder{exists: true})

	w := doRequest(router, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_MalformedToken(t *testing.T) {
	router := newProtectedRouter(&fakeUserFinder{exists: true})

	for _, tok := range []string{"nonsense", "a.b", "a.b.c.d"} {
		w := doRequest(router, "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tok)
		assert.Contains(t, w.Body.String(), "token", tok)
	}
}

func TestMiddleware_SignatureInvalid(t *testing.T) {
	router := newProtectedRouter(&fakeUserFinder{exists: true})

	token, err := GenerateToken(1, "alice", "alice@example.com", nil, "other-secret")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_UserDeleted(t *testing.T) {
	// The token is valid but the record behind it is gone: 404, not 401.
	router := newProtectedRouter(&fakeUserFinder{exists: false})

	token, err := GenerateToken(1, "alice", "alice@example.com", nil, "test-secret")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware("test-secret", &fakeUserFinder{exists: true}))
	router.Use(RequireRoles(RoleAdmin))
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminToken, err := GenerateToken(1, "root", "root@example.com", []string{RoleAdmin}, "test-secret")
	require.NoError(t, err)
	memberToken, err := GenerateToken(2, "bob", "bob@example.com", []string{RoleMember}, "test-secret")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
