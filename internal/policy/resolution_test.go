package policy

import (
	"testing"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func mustResolution(t *testing.T, resolutionType domain.ResolutionType) domain.Resolution {
	t.Helper()
	resolution, err := domain.NewResolution(resolutionType, "closing notes", nil)
	if err != nil {
		t.Fatalf("NewResolution: %v", err)
	}
	return resolution
}

func TestResolutionPolicy(t *testing.T) {
	p := NewResolutionPolicy()
	specialist := buildUser(t, "spec-1", domain.RoleSpecialist)

	t.Run("fixed is always acceptable", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		if decision := p.CanAccept(ticket, mustResolution(t, domain.ResolutionFixed), specialist); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("not reproducible without evidence is acceptable", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		if decision := p.CanAccept(ticket, mustResolution(t, domain.ResolutionNotReproducible), specialist); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("not reproducible blocked after reproduction comment", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		if err := ticket.AddComment("spec-1", "I managed to reproduce the issue on a second machine", false); err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		if decision := p.CanAccept(ticket, mustResolution(t, domain.ResolutionNotReproducible), specialist); decision.Allowed {
			t.Error("allowed NOT_REPRODUCIBLE despite reproduction evidence")
		}
	})
}

func TestSpecialistResolutionPolicy(t *testing.T) {
	p := NewSpecialistResolutionPolicy()
	specialist := buildUser(t, "spec-1", domain.RoleSpecialist)

	assignedInProgress := func(t *testing.T) *domain.Ticket {
		ticket := buildTicket(t, "worker-1")
		if err := ticket.AssignToSpecialist(specialist.ID); err != nil {
			t.Fatalf("AssignToSpecialist: %v", err)
		}
		moveTo(t, ticket, domain.TicketStatusInProgress)
		return ticket
	}

	t.Run("allowed for assigned specialist in progress", func(t *testing.T) {
		ticket := assignedInProgress(t)
		if decision := p.CanMarkReady(ticket, specialist, mustResolution(t, domain.ResolutionFixed)); !decision.Allowed {
			t.Errorf("denied: %s", decision.Reason)
		}
	})

	t.Run("denied when unassigned", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		moveTo(t, ticket, domain.TicketStatusAssigned, domain.TicketStatusInProgress)
		if decision := p.CanMarkReady(ticket, specialist, mustResolution(t, domain.ResolutionFixed)); decision.Allowed {
			t.Error("allowed without assignment")
		}
	})

	t.Run("denied for different specialist", func(t *testing.T) {
		ticket := assignedInProgress(t)
		other := buildUser(t, "spec-2", domain.RoleSpecialist)
		if decision := p.CanMarkReady(ticket, other, mustResolution(t, domain.ResolutionFixed)); decision.Allowed {
			t.Error("allowed for unassigned specialist")
		}
	})

	t.Run("denied outside in progress", func(t *testing.T) {
		ticket := buildTicket(t, "worker-1")
		if err := ticket.AssignToSpecialist(specialist.ID); err != nil {
			t.Fatalf("AssignToSpecialist: %v", err)
		}
		if decision := p.CanMarkReady(ticket, specialist, mustResolution(t, domain.ResolutionFixed)); decision.Allowed {
			t.Error("allowed from ASSIGNED status")
		}
	})

	t.Run("embedded resolution check applies", func(t *testing.T) {
		ticket := assignedInProgress(t)
		if err := ticket.AddComment("worker-1", "you can reproduce it with these steps", false); err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		if decision := p.CanMarkReady(ticket, specialist, mustResolution(t, domain.ResolutionNotReproducible)); decision.Allowed {
			t.Error("allowed NOT_REPRODUCIBLE despite reproduction evidence")
		}
	})
}
