package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// ClientInfo describes where a sign-in came from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	SessionID string      `json:"session_id"`
}

type UserService struct {
	users      repository.UserStore
	sessions   repository.SessionStore
	tokens     *services.TokenService
	blacklist  services.TokenBlacklist
	sessionTTL time.Duration
	logger     hclog.Logger
	now        func() time.Time
}

// NewUserService builds the identity service. blacklist may be nil, in
// which case logout only ends the session.
func NewUserService(
	users repository.UserStore,
	sessions repository.SessionStore,
	tokens *services.TokenService,
	blacklist services.TokenBlacklist,
	sessionTTL time.Duration,
	logger hclog.Logger,
) *UserService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &UserService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		blacklist:  blacklist,
		sessionTTL: sessionTTL,
		logger:     logger.Named("users"),
		now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (svc *UserService) Register(ctx context.Context, email, password string, info ClientInfo) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	existing, err := svc.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, ErrEmailTaken
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		if errors.Is(err, services.ErrWeakPassword) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, err
	}

	user := &model.User{
		UserID:    uuid.New().String(),
		Email:     email,
		Password:  hashed,
		CreatedAt: svc.now().UTC(),
	}
	if err := svc.users.AddUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.TrackAuthAttempt("success", "register")
	return svc.startSession(ctx, user, info)
}

func (svc *UserService) Login(ctx context.Context, email, password string, info ClientInfo) (*AuthResult, error) {
	user, err := svc.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !services.ComparePasswords(user.Password, password) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}

	utils.TrackAuthAttempt("success", "login")
	return svc.startSession(ctx, user, info)
}

// Anonymous creates a user with no email or password.
func (svc *UserService) Anonymous(ctx context.Context, info ClientInfo) (*AuthResult, error) {
	user := &model.User{
		UserID:    uuid.New().String(),
		Anonymous: true,
		CreatedAt: svc.now().UTC(),
	}
	if err := svc.users.AddUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create anonymous user: %w", err)
	}

	utils.TrackAuthAttempt("success", "anonymous")
	return svc.startSession(ctx, user, info)
}

func (svc *UserService) startSession(ctx context.Context, user *model.User, info ClientInfo) (*AuthResult, error) {
	now := svc.now().UTC()
	session := &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         user.UserID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(svc.sessionTTL),
		LastActivityAt: now,
		DeviceInfo:     utils.DeviceInfo(info.UserAgent),
		IPAddress:      info.IPAddress,
		IsActive:       true,
	}
	if err := svc.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := svc.tokens.GenerateJWT(user.UserID, session.SessionID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		SessionID: session.SessionID,
	}, nil
}

// Logout ends the session and, when a blacklist is configured, revokes the
// token until it would have expired anyway.
func (svc *UserService) Logout(ctx context.Context, userID, sessionID, token string, expiresAt time.Time) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if sessionID != "" {
		if err := svc.sessions.EndSession(ctx, sessionID, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to end session: %w", err)
		}
	}
	if svc.blacklist != nil && token != "" {
		if err := svc.blacklist.BlacklistToken(ctx, token, expiresAt); err != nil {
			return err
		}
	}
	return nil
}

// Me returns the caller's account.
func (svc *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := svc.users.FindUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (svc *UserService) Sessions(ctx context.Context, userID string) ([]*model.Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	sessions, err := svc.sessions.GetUserActiveSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
