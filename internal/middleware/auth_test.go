package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/config"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *auth.JWT) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewJWT(config.JWTConfig{SecretKey: "secret", ExpireSeconds: 60, Issuer: "test", NodeID: 1}, auth.NewMemoryBlacklist())
	require.NoError(t, err)

	r := gin.New()
	whoami := func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c).String())
	}
	r.GET("/required", JWTAuth(tokens), whoami)
	r.GET("/optional", OptionalAuth(tokens), whoami)
	return r, tokens
}

func get(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r, tokens := newRouter(t)
	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	for _, scheme := range []string{"Token", "Bearer"} {
		w := get(r, "/required", scheme+" "+token)
		assert.Equal(t, http.StatusOK, w.Code, scheme)
		assert.Equal(t, userID.String(), w.Body.String())
	}

	assert.Equal(t, http.StatusUnauthorized, get(r, "/required", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/required", "Basic "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/required", "Token not-a-jwt").Code)
}

func TestJWTAuthRejectsRevoked(t *testing.T) {
	r, tokens := newRouter(t)
	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(context.Background(), token))

	assert.Equal(t, http.StatusUnauthorized, get(r, "/required", "Token "+token).Code)
}

func TestOptionalAuth(t *testing.T) {
	r, tokens := newRouter(t)
	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	w := get(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	w = get(r, "/optional", "Token garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	w = get(r, "/optional", "Token "+token)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Token abc", "abc", true},
		{"Bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Token", "", false},
		{"Token  ", "", false},
	}
	for _, tt := range tests {
		token, ok := extractToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestCorsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Cors())
	r.PUT("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
