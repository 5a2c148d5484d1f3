package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketEscalated       EventType = "ticket_escalated"
	EventResolutionProposed    EventType = "resolution_proposed"
	EventSatisfactionRecorded  EventType = "satisfaction_recorded"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTicketAttachmentAdded EventType = "ticket_attachment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Number   string                `json:"number"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.PriorityLevel  `json:"priority"`
	Title    string                `json:"title"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	SpecialistID *string `json:"specialist_id,omitempty"`
	TeamID       *string `json:"team_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	Reason         string                `json:"reason"`
	EscalationType domain.EscalationType `json:"escalation_type"`
	NewPriority    *domain.PriorityLevel `json:"new_priority,omitempty"`
}

// ResolutionProposedPayload payload.
type ResolutionProposedPayload struct {
	ResolutionType domain.ResolutionType `json:"resolution_type"`
	Description    string                `json:"description"`
}

// SatisfactionRecordedPayload payload.
type SatisfactionRecordedPayload struct {
	Rating            int  `json:"rating"`
	IsProblemResolved bool `json:"is_problem_resolved"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	AuthorID   string `json:"author_id"`
	IsInternal bool   `json:"is_internal"`
	Preview    string `json:"preview"`
}

// TicketAttachmentAddedPayload payload.
type TicketAttachmentAddedPayload struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}
