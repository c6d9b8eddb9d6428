package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/testutils"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"

func setupUsersTest(t *testing.T, blacklist services.TokenBlacklist) (*usecase.UserService, *services.TokenService) {
	t.Helper()
	repos := testutils.SetupSQLite(t)
	tokens := services.NewTokenService("test-secret", time.Hour)
	return usecase.NewUserService(repos.Users, repos.Sessions, tokens, blacklist, 24*time.Hour, testutils.Logger()), tokens
}

func TestUserServiceRegisterAndLogin(t *testing.T) {
	svc, tokens := setupUsersTest(t, nil)
	ctx := context.Background()
	info := usecase.ClientInfo{UserAgent: firefoxUA, IPAddress: "10.0.0.1"}

	res, err := svc.Register(ctx, "  Ada@Example.com ", "s3cret!", info)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.False(t, res.User.Anonymous)
	assert.NotEmpty(t, res.SessionID)

	claims, err := tokens.ParseJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.UserID, claims.UserID)
	assert.Equal(t, res.SessionID, claims.SessionID)

	_, err = svc.Register(ctx, "ada@example.com", "an0ther!", info)
	assert.ErrorIs(t, err, usecase.ErrEmailTaken)

	login, err := svc.Login(ctx, "ADA@example.com", "s3cret!", info)
	require.NoError(t, err)
	assert.Equal(t, res.User.UserID, login.User.UserID)
	assert.NotEqual(t, res.SessionID, login.SessionID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong1!", info)
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret!", info)
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	sessions, err := svc.Sessions(ctx, res.User.UserID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "10.0.0.1", sessions[0].IPAddress)
	assert.Contains(t, sessions[0].DeviceInfo, "Firefox")
}

func TestUserServiceRegisterValidation(t *testing.T) {
	svc, _ := setupUsersTest(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "s3cret!", usecase.ClientInfo{})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = svc.Register(ctx, "weak@example.com", "password", usecase.ClientInfo{})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestUserServiceAnonymous(t *testing.T) {
	svc, _ := setupUsersTest(t, nil)
	ctx := context.Background()

	first, err := svc.Anonymous(ctx, usecase.ClientInfo{})
	require.NoError(t, err)
	second, err := svc.Anonymous(ctx, usecase.ClientInfo{})
	require.NoError(t, err)

	assert.True(t, first.User.Anonymous)
	assert.NotEqual(t, first.User.UserID, second.User.UserID)

	me, err := svc.Me(ctx, first.User.UserID)
	require.NoError(t, err)
	assert.True(t, me.Anonymous)
	assert.Empty(t, me.Email)
}

func TestUserServiceMeUnknownUser(t *testing.T) {
	svc, _ := setupUsersTest(t, nil)
	_, err := svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
	_, err = svc.Me(context.Background(), "")
	assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
}

func TestUserServiceLogout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	blacklist := services.NewRedisTokenBlacklist(client)

	svc, _ := setupUsersTest(t, blacklist)
	ctx := context.Background()

	res, err := svc.Anonymous(ctx, usecase.ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.User.UserID, res.SessionID, res.Token, res.ExpiresAt))

	listed, err := blacklist.IsTokenBlacklisted(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, listed)

	sessions, err := svc.Sessions(ctx, res.User.UserID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// a second logout of the same session is harmless
	assert.NoError(t, svc.Logout(ctx, res.User.UserID, res.SessionID, res.Token, res.ExpiresAt))
	assert.ErrorIs(t, svc.Logout(ctx, "", res.SessionID, res.Token, res.ExpiresAt), usecase.ErrUnauthenticated)
}
