package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// AuthServiceDependencies bundles collaborators for AuthService.
type AuthServiceDependencies struct {
	Users  repository.UserRepository
	Tokens *auth.TokenManager
	Logger *zap.Logger
}

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService wires the service from its dependency bundle.
func NewAuthService(deps AuthServiceDependencies) *AuthService {
	return &AuthService{users: deps.Users, tokens: deps.Tokens, logger: deps.Logger}
}

// LoginResult carries a successful authentication outcome.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Login checks credentials and returns a signed token. Failures are
// reported uniformly to avoid leaking which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive() {
		return nil, apperrors.NewForbidden("account is not active")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
