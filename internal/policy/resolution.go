package policy

import (
	"fmt"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// ResolutionPolicy validates that a proposed resolution is credible.
type ResolutionPolicy struct{}

// NewResolutionPolicy constructs the policy.
func NewResolutionPolicy() ResolutionPolicy {
	return ResolutionPolicy{}
}

// CanAccept denies a NOT_REPRODUCIBLE resolution when the problem was
// reproduced before.
func (ResolutionPolicy) CanAccept(ticket *domain.Ticket, resolution domain.Resolution, specialist *domain.User) Decision {
	if resolution.Type == domain.ResolutionNotReproducible && ticket.WasReproducedBefore() {
		return Deny("cannot mark as NOT_REPRODUCIBLE - problem was reproducible before")
	}
	return Allow()
}

// SpecialistResolutionPolicy is the full precondition a specialist must
// satisfy before marking a ticket ready for verification.
type SpecialistResolutionPolicy struct {
	resolution ResolutionPolicy
}

// NewSpecialistResolutionPolicy constructs the policy.
func NewSpecialistResolutionPolicy() SpecialistResolutionPolicy {
	return SpecialistResolutionPolicy{resolution: NewResolutionPolicy()}
}

// CanMarkReady decides whether the specialist may move the ticket to
// READY_FOR_VERIFICATION with the given resolution.
func (p SpecialistResolutionPolicy) CanMarkReady(ticket *domain.Ticket, specialist *domain.User, resolution domain.Resolution) Decision {
	assigned := ticket.AssignedSpecialistID()
	if assigned == nil || *assigned != specialist.ID {
		return Deny("cannot mark ticket as ready - not assigned to you")
	}
	if ticket.Status() != domain.TicketStatusInProgress {
		return Deny(fmt.Sprintf("can only mark as ready from IN_PROGRESS status, current is %s", ticket.Status()))
	}
	if decision := p.resolution.CanAccept(ticket, resolution, specialist); !decision.Allowed {
		return decision
	}
	return Allow()
}
