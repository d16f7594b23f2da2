// Package service contains the business logic for the patient-management service.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Nimmmsh/digiCare/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionRevoked means the token verified but the session no longer
	// exists server-side (logout or expiry).
	ErrSessionRevoked = errors.New("session revoked")
)

// Session is the authenticated identity carried through one request. It is
// immutable after creation.
type Session struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	Session   Session
	ExpiresIn int64
}

// AuthService authenticates users and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate resolves a token to a live session. It fails for invalid,
	// expired, and revoked tokens alike.
	Authenticate(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	redis    *redis.Client
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, tokens TokenService, redisClient *redis.Client) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		redis:    redisClient,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, sessionID, err := s.tokens.Generate(user.ID, user.Role.Name, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	// Register the session so logout can revoke it before the token expires.
	if err := s.redis.Set(ctx, sessionKey(sessionID), user.ID, s.tokens.Expiry()).Err(); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return &LoginResult{
		Token: token,
		Session: Session{
			UserID:   user.ID,
			Role:     user.Role.Name,
			FullName: user.FullName,
		},
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Get(ctx, sessionKey(claims.ID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionRevoked
		}
		return nil, fmt.Errorf("failed to check session: %w", err)
	}

	return &Session{
		UserID:   claims.UserID,
		Role:     claims.Role,
		FullName: claims.FullName,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}

	if err := s.redis.Del(ctx, sessionKey(claims.ID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
