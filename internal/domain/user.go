package domain

import (
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// UserRole tags the user variant. Role dispatch matches on the tag;
// there is no subtype hierarchy.
type UserRole string

const (
	RoleWorker        UserRole = "WORKER"
	RoleSpecialist    UserRole = "SPECIALIST"
	RoleAdministrator UserRole = "ADMINISTRATOR"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleWorker, RoleSpecialist, RoleAdministrator:
		return true
	}
	return false
}

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountSuspended:
		return true
	}
	return false
}

// User models anyone interacting with tickets: workers report and verify,
// specialists resolve, administrators manage. Specialist-only fields are
// zero for the other roles.
type User struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	Role          UserRole
	AccountStatus AccountStatus
	PasswordHash  string

	// Specialist fields.
	TeamID            *string
	Specialization    *string
	ActiveTicketLimit int
	ActiveTicketCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

const defaultActiveTicketLimit = 10

// NewUser validates input and constructs a user of the given role.
// Specialists receive the default active-ticket limit.
func NewUser(id, email, firstName, lastName string, role UserRole, accountStatus AccountStatus) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("user id cannot be empty", nil)
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("invalid email", map[string]any{"email": email})
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, apperrors.NewValidationError("user name cannot be empty", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown user role", map[string]any{"role": role})
	}
	if !accountStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown account status", map[string]any{"account_status": accountStatus})
	}

	user := &User{
		ID:            id,
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		Role:          role,
		AccountStatus: accountStatus,
	}
	if role == RoleSpecialist {
		user.ActiveTicketLimit = defaultActiveTicketLimit
	}
	return user, nil
}

// FullName returns the display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsActive reports whether the account may act in the system.
func (u *User) IsActive() bool {
	return u.AccountStatus == AccountActive
}

// CanAcceptMoreTickets reports whether a specialist has capacity left.
func (u *User) CanAcceptMoreTickets() bool {
	return u.Role == RoleSpecialist && u.IsActive() && u.ActiveTicketCount < u.ActiveTicketLimit
}

// IncrementActiveTickets bumps the specialist's active count.
func (u *User) IncrementActiveTickets() error {
	if u.ActiveTicketCount >= u.ActiveTicketLimit {
		return apperrors.NewConflict("specialist ticket limit reached",
			map[string]any{"count": u.ActiveTicketCount, "limit": u.ActiveTicketLimit})
	}
	u.ActiveTicketCount++
	return nil
}

// DecrementActiveTickets lowers the specialist's active count, never
// below zero.
func (u *User) DecrementActiveTickets() {
	if u.ActiveTicketCount > 0 {
		u.ActiveTicketCount--
	}
}
