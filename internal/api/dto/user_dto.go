package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// RegisterUserRequest creates an account.
type RegisterUserRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UpdateAccountStatusRequest changes an account lifecycle state.
type UpdateAccountStatusRequest struct {
	AccountStatus string `json:"account_status"`
}

// UserResponse is the public account view. The password hash never
// leaves the service.
type UserResponse struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FullName          string  `json:"full_name"`
	Role              string  `json:"role"`
	AccountStatus     string  `json:"account_status"`
	TeamID            *string `json:"team_id,omitempty"`
	Specialization    *string `json:"specialization,omitempty"`
	ActiveTicketCount int     `json:"active_ticket_count,omitempty"`
	ActiveTicketLimit int     `json:"active_ticket_limit,omitempty"`
}

// NewUserResponse projects a user into its public view.
func NewUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName(),
		Role:          string(u.Role),
		AccountStatus: string(u.AccountStatus),
	}
	if u.Role == domain.RoleSpecialist {
		resp.TeamID = u.TeamID
		resp.Specialization = u.Specialization
		resp.ActiveTicketCount = u.ActiveTicketCount
		resp.ActiveTicketLimit = u.ActiveTicketLimit
	}
	return resp
}

// NewUserResponses maps a user slice to its public view.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
