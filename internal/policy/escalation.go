package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// WorkerEscalationPolicy gates a worker's "reject resolution" action.
type WorkerEscalationPolicy struct{}

// NewWorkerEscalationPolicy constructs the policy.
func NewWorkerEscalationPolicy() WorkerEscalationPolicy {
	return WorkerEscalationPolicy{}
}

// CanEscalate decides whether the worker may escalate the ticket. Only
// the original reporter may reject a proposed resolution, only from
// READY_FOR_VERIFICATION, and only with a reason.
func (WorkerEscalationPolicy) CanEscalate(ticket *domain.Ticket, worker *domain.User, reason string) Decision {
	if ticket.Status() != domain.TicketStatusReadyForVerification {
		return Deny(fmt.Sprintf("can only escalate from READY_FOR_VERIFICATION status, current status is %s", ticket.Status()))
	}
	if ticket.CreatedByID() != worker.ID {
		return Deny("only ticket creator can escalate")
	}
	if strings.TrimSpace(reason) == "" {
		return Deny("escalation reason is required")
	}
	return Allow()
}

// autoEscalateAfterFailures is the repeated-failure threshold.
const autoEscalateAfterFailures = 3

// AutoEscalationPolicy decides whether a ticket should be escalated
// automatically. The periodic trigger itself is a scheduler concern.
type AutoEscalationPolicy struct{}

// NewAutoEscalationPolicy constructs the policy.
func NewAutoEscalationPolicy() AutoEscalationPolicy {
	return AutoEscalationPolicy{}
}

// ShouldAutoEscalate allows escalation when the SLA deadline has passed
// while the ticket is IN_PROGRESS, or when the ticket has already been
// escalated at least three times.
func (AutoEscalationPolicy) ShouldAutoEscalate(ticket *domain.Ticket, currentStatus domain.TicketStatus, slaDeadline time.Time) Decision {
	if time.Now().UTC().After(slaDeadline) && currentStatus == domain.TicketStatusInProgress {
		return Allow()
	}
	if ticket.EscalationCount() >= autoEscalateAfterFailures {
		return Allow()
	}
	return Deny("no auto-escalation trigger met")
}
