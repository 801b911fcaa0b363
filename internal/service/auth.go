package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/packnbake/storefront/internal/hash"
	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/logging"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
)

type AuthService struct {
	Repo          *repo.GormRepo
	IDs           idgen.Generator
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User         models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	refreshToken, err := tokens.SignRefreshToken(user.ID, user.Role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	if err := s.Repo.SaveRefreshToken(ctx, refreshToken, user.ID, refreshExp); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    time.Now().Add(tokens.AccessTTL),
		RefreshExp:   refreshExp,
	}, nil
}

// Login checks the identity directory; a failed match is reported as
// ErrInvalidCredentials, never as a distinguishable reason.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "reason", "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Register creates a durable identity with role user and authenticates it
// immediately. Admins are only ever seeded, never registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		ID:           s.IDs.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_failed", "reason", "email taken")
			return nil, ErrUserExists
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	return s.issueTokens(ctx, &user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

// Refresh rotates the pair: the presented token is revoked and a fresh one
// stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.ParseRefresh(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	userID, _, err := tokens.Subject(claims)
	if err != nil {
		return nil, err
	}

	storedUserID, err := s.Repo.RefreshTokenValid(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if storedUserID != userID {
		return nil, errors.New("refresh token subject mismatch")
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Me resolves the authenticated identity after a reload; handlers call it
// with the subject of a still-valid access token.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, userID)
}
