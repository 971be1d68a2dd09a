package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/printhaus/storefront/internal/domain"
	"github.com/printhaus/storefront/internal/repository"
	"github.com/printhaus/storefront/pkg/errors"
)

// sessionTTL is how long a login session stays valid
const sessionTTL = 7 * 24 * time.Hour

type userService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(repos *repository.Repositories, logger *zap.Logger) *userService {
	return &userService{
		repos:  repos,
		logger: logger,
	}
}

// Register creates an account and signs it in. Duplicate emails surface as
// ErrConflict from the repository.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issueSession(ctx, user)
}

// Login verifies credentials and issues a session token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			// Same error as a bad password, so email enumeration fails
			return nil, &errors.ErrUnauthorized{Message: "invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &errors.ErrUnauthorized{Message: "invalid email or password"}
	}

	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to its user
func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, &errors.ErrUnauthorized{Message: "missing session token"}
	}

	session, err := s.repos.AuthSession.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.repos.User.GetByID(ctx, session.UserID)
}

// Logout revokes a session token
func (s *userService) Logout(ctx context.Context, token string) error {
	return s.repos.AuthSession.Delete(ctx, token)
}

func (s *userService) issueSession(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	session := &domain.AuthSession{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.repos.AuthSession.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: session.Token,
		User: UserInfo{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}
