package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// EscalationType identifies what triggered an escalation.
type EscalationType string

const (
	EscalationWorkerInitiated EscalationType = "WORKER_INITIATED"
	EscalationSLATimeout      EscalationType = "SLA_TIMEOUT"
	EscalationAuto            EscalationType = "AUTO_ESCALATION"
	EscalationAdminInitiated  EscalationType = "ADMIN_INITIATED"
)

// Escalation is the immutable record of a single escalation event.
type Escalation struct {
	ID               string         `json:"id"`
	Reason           string         `json:"reason"`
	EscalatedBy      string         `json:"escalated_by"`
	EscalationType   EscalationType `json:"escalation_type"`
	PreviousPriority PriorityLevel  `json:"previous_priority"`
	NewPriority      *PriorityLevel `json:"new_priority,omitempty"`
	EscalatedAt      time.Time      `json:"escalated_at"`
}

// NewEscalation validates and constructs an Escalation record.
func NewEscalation(reason, escalatedBy string, escalationType EscalationType, previousPriority PriorityLevel, newPriority *PriorityLevel) (Escalation, error) {
	if strings.TrimSpace(reason) == "" {
		return Escalation{}, apperrors.NewValidationError("escalation reason cannot be empty", nil)
	}
	if strings.TrimSpace(escalatedBy) == "" {
		return Escalation{}, apperrors.NewValidationError("escalation actor cannot be empty", nil)
	}
	if newPriority != nil && !newPriority.Valid() {
		return Escalation{}, apperrors.NewValidationError("unknown priority level", map[string]any{"priority": *newPriority})
	}
	return Escalation{
		ID:               uuid.NewString(),
		Reason:           reason,
		EscalatedBy:      escalatedBy,
		EscalationType:   escalationType,
		PreviousPriority: previousPriority,
		NewPriority:      newPriority,
		EscalatedAt:      time.Now().UTC(),
	}, nil
}
