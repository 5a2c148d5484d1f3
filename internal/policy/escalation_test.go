package policy

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func buildTicket(t *testing.T, createdBy string) *domain.Ticket {
	t.Helper()
	ticket, err := domain.NewTicket("ticket-1", "VPN down", "cannot connect to the VPN", domain.CategoryIT, domain.PriorityHigh, createdBy)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	return ticket
}

func buildUser(t *testing.T, id string, role domain.UserRole) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, id+"@example.com", "Test", "User", role, domain.AccountActive)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return user
}

func moveTo(t *testing.T, ticket *domain.Ticket, statuses ...domain.TicketStatus) {
	t.Helper()
	for _, status := range statuses {
		if err := ticket.ChangeStatus(status); err != nil {
			t.Fatalf("ChangeStatus(%s): %v", status, err)
		}
	}
}

func TestWorkerEscalationPolicy(t *testing.T) {
	p := NewWorkerEscalationPolicy()
	creator := buildUser(t, "worker-1", domain.RoleWorker)
	other := buildUser(t, "worker-2", domain.RoleWorker)

	t.Run("allowed for creator with reason", func(t *testing.T) {
		ticket := buildTicket(t, creator.ID)
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.TicketStatusReadyForVerification)

		if decision := p.CanEscalate(ticket, creator, "still broken"); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("denied outside ready for verification", func(t *testing.T) {
		ticket := buildTicket(t, creator.ID)
		if decision := p.CanEscalate(ticket, creator, "still broken"); decision.Allowed {
			t.Error("allowed from NEW status")
		}
	})

	t.Run("denied for non-creator", func(t *testing.T) {
		ticket := buildTicket(t, creator.ID)
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.TicketStatusReadyForVerification)

		if decision := p.CanEscalate(ticket, other, "still broken"); decision.Allowed {
			t.Error("allowed for a different worker")
		}
	})

	t.Run("denied without reason", func(t *testing.T) {
		ticket := buildTicket(t, creator.ID)
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress, domain.TicketStatusReadyForVerification)

		if decision := p.CanEscalate(ticket, creator, "   "); decision.Allowed {
			t.Error("allowed with blank reason")
		}
	})
}

func TestAutoEscalationPolicy(t *testing.T) {
	p := NewAutoEscalationPolicy()

	t.Run("sla breach while in progress", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress)

		past := time.Now().UTC().Add(-time.Hour)
		if decision := p.ShouldAutoEscalate(ticket, ticket.Status(), past); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("sla breach in other status does not trigger", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		past := time.Now().UTC().Add(-time.Hour)
		if decision := p.ShouldAutoEscalate(ticket, ticket.Status(), past); decision.Allowed {
			t.Error("allowed for NEW ticket on deadline alone")
		}
	})

	t.Run("repeated escalations trigger regardless of deadline", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		for i := 0; i < 3; i++ {
			escalation, err := domain.NewEscalation("still broken", "worker-1", domain.EscalationWorkerInitiated, ticket.Priority(), nil)
			if err != nil {
				t.Fatalf("NewEscalation: %v", err)
			}
			if err := ticket.AddEscalation(escalation); err != nil {
				t.Fatalf("AddEscalation: %v", err)
			}
		}

		future := time.Now().UTC().Add(time.Hour)
		if decision := p.ShouldAutoEscalate(ticket, ticket.Status(), future); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("quiet ticket within deadline", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress)

		future := time.Now().UTC().Add(time.Hour)
		if decision := p.ShouldAutoEscalate(ticket, ticket.Status(), future); decision.Allowed {
			t.Error("allowed without any trigger")
		}
	})
}
