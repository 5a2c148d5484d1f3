package policy

import (
	"fmt"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// transition pairs a target status with the roles allowed to request it.
// An empty role list means any role.
type transition struct {
	target domain.TicketStatus
	roles  []domain.UserRole
}

// allowedTransitions is the single source of truth for user-requested
// status changes. The implicit NEW->ASSIGNED advance performed by the
// assignment operations bypasses this table; CLOSED is terminal.
var allowedTransitions = map[domain.TicketStatus][]transition{
	domain.TicketStatusNew: {
		{target: domain.TicketStatusAssigned},
		{target: domain.TicketStatusEscalated, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusAssigned: {
		{target: domain.TicketStatusInProgress, roles: []domain.UserRole{domain.RoleSpecialist}},
		{target: domain.TicketStatusEscalated, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusInProgress: {
		{target: domain.TicketStatusReadyForVerification, roles: []domain.UserRole{domain.RoleSpecialist}},
		{target: domain.TicketStatusAwaitingResponse, roles: []domain.UserRole{domain.RoleSpecialist}},
		{target: domain.TicketStatusEscalated, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusAwaitingResponse: {
		{target: domain.TicketStatusInProgress, roles: []domain.UserRole{domain.RoleWorker, domain.RoleSpecialist}},
		{target: domain.TicketStatusEscalated, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusReadyForVerification: {
		{target: domain.TicketStatusClosed, roles: []domain.UserRole{domain.RoleWorker}},
		{target: domain.TicketStatusEscalated, roles: []domain.UserRole{domain.RoleWorker}},
		{target: domain.TicketStatusInProgress, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusEscalated: {
		{target: domain.TicketStatusInProgress, roles: []domain.UserRole{domain.RoleAdministrator}},
		{target: domain.TicketStatusAssigned, roles: []domain.UserRole{domain.RoleAdministrator}},
	},
	domain.TicketStatusClosed: {},
}

// StatusPolicy validates status transitions against the lifecycle table.
type StatusPolicy struct{}

// NewStatusPolicy constructs the policy.
func NewStatusPolicy() StatusPolicy {
	return StatusPolicy{}
}

// CanTransition decides whether actorRole may move a ticket from current
// to target. Same-state transitions are always allowed.
func (StatusPolicy) CanTransition(current, target domain.TicketStatus, actorRole domain.UserRole) Decision {
	if current == target {
		return Allow()
	}
	if current == domain.TicketStatusClosed {
		return Deny("cannot transition from CLOSED status")
	}

	transitions, ok := allowedTransitions[current]
	if !ok {
		return Deny(fmt.Sprintf("unknown current status: %s", current))
	}
	for _, tr := range transitions {
		if tr.target != target {
			continue
		}
		if len(tr.roles) == 0 {
			return Allow()
		}
		for _, role := range tr.roles {
			if role == actorRole {
				return Allow()
			}
		}
	}
	return Deny(fmt.Sprintf("cannot transition from %s to %s as %s", current, target, actorRole))
}
