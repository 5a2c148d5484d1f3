package policy

import (
	"testing"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestCanTransition(t *testing.T) {
	p := NewStatusPolicy()

	cases := []struct {
		name    string
		current domain.TicketStatus
		target  domain.TicketStatus
		role    domain.UserRole
		allowed bool
	}{
		{"new to assigned any role", domain.TicketStatusNew, domain.TicketStatusAssigned, domain.RoleWorker, true},
		{"new to escalated by admin", domain.TicketStatusNew, domain.TicketStatusEscalated, domain.RoleAdministrator, true},
		{"new to escalated by worker", domain.TicketStatusNew, domain.TicketStatusEscalated, domain.RoleWorker, false},
		{"new to in_progress skips assigned", domain.TicketStatusNew, domain.TicketStatusInProgress, domain.RoleSpecialist, false},
		{"new to closed", domain.TicketStatusNew, domain.TicketStatusClosed, domain.RoleAdministrator, false},

		{"assigned to in_progress by specialist", domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.RoleSpecialist, true},
		{"assigned to in_progress by worker", domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.RoleWorker, false},
		{"assigned to escalated by admin", domain.TicketStatusAssigned, domain.TicketStatusEscalated, domain.RoleAdministrator, true},
		{"assigned back to new", domain.TicketStatusAssigned, domain.TicketStatusNew, domain.RoleAdministrator, false},

		{"in_progress to ready by specialist", domain.TicketStatusInProgress, domain.TicketStatusReadyForVerification, domain.RoleSpecialist, true},
		{"in_progress to ready by worker", domain.TicketStatusInProgress, domain.TicketStatusReadyForVerification, domain.RoleWorker, false},
		{"in_progress to awaiting by specialist", domain.TicketStatusInProgress, domain.TicketStatusAwaitingResponse, domain.RoleSpecialist, true},
		{"in_progress to escalated by admin", domain.TicketStatusInProgress, domain.TicketStatusEscalated, domain.RoleAdministrator, true},
		{"in_progress to escalated by specialist", domain.TicketStatusInProgress, domain.TicketStatusEscalated, domain.RoleSpecialist, false},
		{"in_progress to closed", domain.TicketStatusInProgress, domain.TicketStatusClosed, domain.RoleWorker, false},

		{"awaiting to in_progress by worker", domain.TicketStatusAwaitingResponse, domain.TicketStatusInProgress, domain.RoleWorker, true},
		{"awaiting to in_progress by specialist", domain.TicketStatusAwaitingResponse, domain.TicketStatusInProgress, domain.RoleSpecialist, true},
		{"awaiting to in_progress by admin", domain.TicketStatusAwaitingResponse, domain.TicketStatusInProgress, domain.RoleAdministrator, false},
		{"awaiting to escalated by admin", domain.TicketStatusAwaitingResponse, domain.TicketStatusEscalated, domain.RoleAdministrator, true},

		{"ready to closed by worker", domain.TicketStatusReadyForVerification, domain.TicketStatusClosed, domain.RoleWorker, true},
		{"ready to closed by specialist", domain.TicketStatusReadyForVerification, domain.TicketStatusClosed, domain.RoleSpecialist, false},
		{"ready to escalated by worker", domain.TicketStatusReadyForVerification, domain.TicketStatusEscalated, domain.RoleWorker, true},
		{"ready to escalated by admin", domain.TicketStatusReadyForVerification, domain.TicketStatusEscalated, domain.RoleAdministrator, false},
		{"ready to in_progress by admin", domain.TicketStatusReadyForVerification, domain.TicketStatusInProgress, domain.RoleAdministrator, true},
		{"ready to in_progress by specialist", domain.TicketStatusReadyForVerification, domain.TicketStatusInProgress, domain.RoleSpecialist, false},

		{"escalated to in_progress by admin", domain.TicketStatusEscalated, domain.TicketStatusInProgress, domain.RoleAdministrator, true},
		{"escalated to assigned by admin", domain.TicketStatusEscalated, domain.TicketStatusAssigned, domain.RoleAdministrator, true},
		{"escalated to in_progress by specialist", domain.TicketStatusEscalated, domain.TicketStatusInProgress, domain.RoleSpecialist, false},
		{"escalated to closed", domain.TicketStatusEscalated, domain.TicketStatusClosed, domain.RoleAdministrator, false},

		{"closed is terminal for admin", domain.TicketStatusClosed, domain.TicketStatusInProgress, domain.RoleAdministrator, false},
		{"closed is terminal for worker", domain.TicketStatusClosed, domain.TicketStatusEscalated, domain.RoleWorker, false},

		{"same state always allowed", domain.TicketStatusClosed, domain.TicketStatusClosed, domain.RoleWorker, true},
		{"unknown current status", domain.TicketStatus("BOGUS"), domain.TicketStatusClosed, domain.RoleAdministrator, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := p.CanTransition(tc.current, tc.target, tc.role)
			if decision.Allowed != tc.allowed {
				t.Errorf("CanTransition(%s, %s, %s) = %t (%s), want %t",
					tc.current, tc.target, tc.role, decision.Allowed, decision.Reason, tc.allowed)
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Error("denial carries no reason")
			}
		})
	}
}
