package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// CreateTeamInput is the validated payload for team creation.
type CreateTeamInput struct {
	Name           string
	Specialization domain.TicketCategory
	MaxTickets     int
}

// TeamServiceDependencies bundles collaborators for TeamService.
type TeamServiceDependencies struct {
	Teams  repository.TeamRepository
	Users  repository.UserRepository
	Logger *zap.Logger
}

// TeamService manages specialist teams.
type TeamService struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	logger *zap.Logger
}

// NewTeamService wires the service from its dependency bundle.
func NewTeamService(deps TeamServiceDependencies) *TeamService {
	return &TeamService{teams: deps.Teams, users: deps.Users, logger: deps.Logger}
}

// Create registers a new team.
func (s *TeamService) Create(ctx context.Context, in CreateTeamInput) (*domain.Team, error) {
	team, err := domain.NewTeam(uuid.NewString(), in.Name, in.Specialization, in.MaxTickets)
	if err != nil {
		return nil, err
	}
	if err := s.teams.Save(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID),
		zap.String("specialization", string(team.Specialization)))
	return team, nil
}

// GetByID loads a team.
func (s *TeamService) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// List returns all teams.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return teams, nil
}

// AddSpecialist adds a specialist to the team and points the
// specialist's account at it.
func (s *TeamService) AddSpecialist(ctx context.Context, teamID, specialistID string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	specialist, err := s.users.GetByID(ctx, specialistID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if specialist.Role != domain.RoleSpecialist {
		return nil, apperrors.NewValidationError("user is not a specialist", map[string]any{"user_id": specialistID})
	}

	if err := team.AddSpecialist(specialistID); err != nil {
		return nil, err
	}
	specialist.TeamID = &team.ID

	if err := s.teams.Save(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.users.Update(ctx, specialist); err != nil {
		return nil, apperrors.MapError(err)
	}
	return team, nil
}

// RemoveSpecialist removes a specialist from the team.
func (s *TeamService) RemoveSpecialist(ctx context.Context, teamID, specialistID string) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := team.RemoveSpecialist(specialistID); err != nil {
		return nil, err
	}
	if err := s.teams.Save(ctx, team); err != nil {
		return nil, apperrors.MapError(err)
	}

	if specialist, err := s.users.GetByID(ctx, specialistID); err == nil {
		if specialist.TeamID != nil && *specialist.TeamID == teamID {
			specialist.TeamID = nil
			if err := s.users.Update(ctx, specialist); err != nil {
				s.logger.Warn("specialist team detach failed",
					zap.String("specialist_id", specialistID), zap.Error(err))
			}
		}
	}
	return team, nil
}
