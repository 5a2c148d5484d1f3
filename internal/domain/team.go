package domain

import (
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// Team groups specialists around a ticket category. Referenced from
// tickets by id only.
type Team struct {
	ID             string
	Name           string
	Specialization TicketCategory
	MaxTickets     int
	SpecialistIDs  []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const defaultTeamMaxTickets = 50

// NewTeam validates input and constructs a team.
func NewTeam(id, name string, specialization TicketCategory, maxTickets int) (*Team, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("team id cannot be empty", nil)
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("team name cannot be empty", nil)
	}
	if !specialization.Valid() {
		return nil, apperrors.NewValidationError("unknown team specialization", map[string]any{"specialization": specialization})
	}
	if maxTickets <= 0 {
		maxTickets = defaultTeamMaxTickets
	}
	return &Team{
		ID:             id,
		Name:           name,
		Specialization: specialization,
		MaxTickets:     maxTickets,
	}, nil
}

// AddSpecialist adds a member, rejecting duplicates.
func (t *Team) AddSpecialist(specialistID string) error {
	if strings.TrimSpace(specialistID) == "" {
		return apperrors.NewValidationError("specialist id cannot be empty", nil)
	}
	for _, id := range t.SpecialistIDs {
		if id == specialistID {
			return apperrors.NewConflict("specialist already in team", map[string]any{"specialist_id": specialistID})
		}
	}
	t.SpecialistIDs = append(t.SpecialistIDs, specialistID)
	return nil
}

// RemoveSpecialist removes a member.
func (t *Team) RemoveSpecialist(specialistID string) error {
	if strings.TrimSpace(specialistID) == "" {
		return apperrors.NewValidationError("specialist id cannot be empty", nil)
	}
	for i, id := range t.SpecialistIDs {
		if id == specialistID {
			t.SpecialistIDs = append(t.SpecialistIDs[:i], t.SpecialistIDs[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("specialist", map[string]any{"specialist_id": specialistID})
}

// HasMembers reports whether the team can take assignments.
func (t *Team) HasMembers() bool {
	return len(t.SpecialistIDs) > 0
}
