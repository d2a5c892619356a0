package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityRouter(ensure EnsureFunc, captured *int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithUser(ensure))
	r.GET("/whoami", func(c *gin.Context) {
		*captured = UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestWithUser_EnsuresAndStoresID(t *testing.T) {
	var got Identity
	ensure := func(ctx context.Context, ident Identity) (int64, error) {
		got = ident
		return 42, nil
	}

	var uid int64
	r := identityRouter(ensure, &uid)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "ada")
	req.Header.Set("X-User-Name", "Ada Lovelace")
	req.Header.Set("X-User-Email", "ada@example.com")
	req.Header.Set("X-User-Photo", "https://example.com/ada.png")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), uid)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "https://example.com/ada.png", got.AvatarURL)
}

func TestWithUser_AnonymousPassthrough(t *testing.T) {
	called := false
	ensure := func(ctx context.Context, ident Identity) (int64, error) {
		called = true
		return 0, nil
	}

	var uid int64
	r := identityRouter(ensure, &uid)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, called)
	assert.Zero(t, uid)
}

func TestWithUser_EnsureFailureAborts(t *testing.T) {
	ensure := func(ctx context.Context, ident Identity) (int64, error) {
		return 0, errors.New("db down")
	}

	var uid int64
	r := identityRouter(ensure, &uid)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "ada")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, uid)
}
