package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// CreateTeamRequest registers a new team.
type CreateTeamRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	MaxTickets     int    `json:"max_tickets,omitempty"`
}

// TeamMemberRequest adds or removes a specialist.
type TeamMemberRequest struct {
	SpecialistID string `json:"specialist_id"`
}

// TeamResponse is the public team view.
type TeamResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	MaxTickets     int      `json:"max_tickets"`
	SpecialistIDs  []string `json:"specialist_ids"`
}

// NewTeamResponse projects a team into its public view.
func NewTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		Name:           t.Name,
		Specialization: string(t.Specialization),
		MaxTickets:     t.MaxTickets,
		SpecialistIDs:  append([]string{}, t.SpecialistIDs...),
	}
}

// NewTeamResponses maps a team slice to its public view.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, NewTeamResponse(&teams[i]))
	}
	return result
}
