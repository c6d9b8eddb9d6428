package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", time.Hour)
	svc.now = func() time.Time { return now }

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "round trip keeps user and session",
			run: func(t *testing.T) {
				token, expiresAt, err := svc.GenerateJWT("user-1", "session-1")
				require.NoError(t, err)
				assert.Equal(t, now.Add(time.Hour), expiresAt)

				claims, err := svc.ParseJWT(token)
				require.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "session-1", claims.SessionID)
				assert.Equal(t, tokenIssuer, claims.Issuer)
			},
		},
		{
			name: "expired token is rejected",
			run: func(t *testing.T) {
				token, _, err := svc.GenerateJWT("user-1", "session-1")
				require.NoError(t, err)

				later := NewTokenService("test-secret", time.Hour)
				later.now = func() time.Time { return now.Add(2 * time.Hour) }
				_, err = later.ParseJWT(token)
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
		{
			name: "wrong secret is rejected",
			run: func(t *testing.T) {
				token, _, err := svc.GenerateJWT("user-1", "session-1")
				require.NoError(t, err)

				other := NewTokenService("another-secret", time.Hour)
				other.now = svc.now
				_, err = other.ParseJWT(token)
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
		{
			name: "foreign issuer is rejected",
			run: func(t *testing.T) {
				claims := Claims{
					UserID: "user-1",
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "someone-else",
						ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
				require.NoError(t, err)

				_, err = svc.ParseJWT(token)
				assert.True(t, errors.Is(err, ErrInvalidToken))
			},
		},
		{
			name: "garbage is rejected",
			run: func(t *testing.T) {
				_, err := svc.ParseJWT("not.a.token")
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}
