package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// RegisterUserInput is the validated payload for account creation.
type RegisterUserInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Role           domain.UserRole
	Specialization *string
}

// UserServiceDependencies bundles collaborators for UserService.
type UserServiceDependencies struct {
	Users  repository.UserRepository
	Logger *zap.Logger
}

// UserService manages account registration and lookups.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService wires the service from its dependency bundle.
func NewUserService(deps UserServiceDependencies) *UserService {
	return &UserService{users: deps.Users, logger: deps.Logger}
}

// Register creates an account of the requested role. Specialist
// registrations may carry a specialization.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	if existing, err := s.users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": in.Email})
	}

	user, err := domain.NewUser(uuid.NewString(), in.Email, in.FirstName, in.LastName, in.Role, domain.AccountActive)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSpecialist {
		user.Specialization = in.Specialization
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// GetByID loads a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetByEmail loads a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListSpecialists returns all specialist accounts.
func (s *UserService) ListSpecialists(ctx context.Context) ([]domain.User, error) {
	specialists, err := s.users.ListByRole(ctx, domain.RoleSpecialist)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialists, nil
}

// SetAccountStatus changes the account lifecycle state.
func (s *UserService) SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown account status", map[string]any{"account_status": status})
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user.AccountStatus = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
