package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	blacklist := services.NewRedisTokenBlacklist(rdb)

	tokens := services.NewTokenService("test-secret", time.Hour)
	valid, expiresAt, err := tokens.GenerateJWT("user-1", "session-1")
	require.NoError(t, err)
	revoked, revokedExp, err := tokens.GenerateJWT("user-1", "session-2")
	require.NoError(t, err)
	require.NoError(t, blacklist.BlacklistToken(context.Background(), revoked, revokedExp))

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, blacklist, hclog.NewNullLogger()), func(c *gin.Context) {
		exp, _ := c.Get(ContextTokenExpiresAt)
		c.JSON(http.StatusOK, gin.H{
			"user":    c.GetString(ContextUserID),
			"session": c.GetString(ContextSessionID),
			"exp":     exp.(time.Time).Unix(),
		})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user":"user-1","session":"session-1","exp":`+strconv.FormatInt(expiresAt.Unix(), 10)+`}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareWithoutBlacklist(t *testing.T) {
	tokens := services.NewTokenService("test-secret", time.Hour)
	token, _, err := tokens.GenerateJWT("user-1", "")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, nil, hclog.NewNullLogger()), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}
