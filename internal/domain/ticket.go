package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// Ticket is the aggregate root for support requests. It exclusively owns
// its comments, escalations, attachments, history, resolution and
// satisfaction; callers mutate it only through the methods below. The
// aggregate is not safe for concurrent use: the caller serializes
// mutations per ticket id.
type Ticket struct {
	id                   string
	number               string
	title                string
	description          string
	status               TicketStatus
	priority             PriorityLevel
	category             TicketCategory
	sla                  SLA
	assignedSpecialistID *string
	assignedTeamID       *string
	createdByID          string
	createdAt            time.Time
	updatedAt            time.Time
	resolvedAt           *time.Time

	resolution   *Resolution
	satisfaction *Satisfaction
	comments     []Comment
	escalations  []Escalation
	attachments  []Attachment
	history      []HistoryChange
}

// NewTicket validates input and constructs a ticket in status NEW with a
// generated ticket number, an SLA derived from the initial priority, and
// a seeded CREATED history entry.
func NewTicket(id, title, description string, category TicketCategory, priorityLevel PriorityLevel, createdByID string) (*Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("ticket id cannot be empty", nil)
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("ticket title cannot be empty", nil)
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewValidationError("ticket description cannot be empty", nil)
	}
	if strings.TrimSpace(createdByID) == "" {
		return nil, apperrors.NewValidationError("ticket creator cannot be empty", nil)
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError("unknown ticket category", map[string]any{"category": category})
	}
	if !priorityLevel.Valid() {
		return nil, apperrors.NewValidationError("unknown priority level", map[string]any{"priority": priorityLevel})
	}

	now := time.Now().UTC()
	ticket := &Ticket{
		id:          id,
		number:      generateTicketNumber(),
		title:       title,
		description: description,
		status:      TicketStatusNew,
		priority:    priorityLevel,
		category:    category,
		sla:         SLAForPriority(priorityLevel),
		createdByID: createdByID,
		createdAt:   now,
		updatedAt:   now,
	}
	ticket.recordChange(ChangeCreated, nil, strPtr(string(TicketStatusNew)), createdByID, "Ticket created")
	return ticket, nil
}

// generateTicketNumber builds a unique number from the creation date and
// a random component. Numbers are never reused.
func generateTicketNumber() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("T-%s-%s", time.Now().UTC().Format("20060102"), random)
}

// ChangeStatus sets the ticket status. Same-state transitions are a
// strict no-op: no history entry, no updatedAt bump. Role-based
// transition legality is the caller's responsibility; the aggregate only
// guards that the status value is known. Closing the ticket sets
// resolvedAt once.
func (t *Ticket) ChangeStatus(newStatus TicketStatus) error {
	if !newStatus.Valid() {
		return apperrors.NewValidationError("unknown ticket status", map[string]any{"status": newStatus})
	}
	if t.status == newStatus {
		return nil
	}

	previous := t.status
	t.status = newStatus
	t.updatedAt = time.Now().UTC()

	if newStatus == TicketStatusClosed && t.resolvedAt == nil {
		now := time.Now().UTC()
		t.resolvedAt = &now
	}

	t.recordChange(ChangeStatusChanged, strPtr(string(previous)), strPtr(string(newStatus)), t.createdByID,
		fmt.Sprintf("Status changed from %s to %s", previous, newStatus))
	return nil
}

// AssignToSpecialist assigns the ticket to a specialist. A NEW ticket
// auto-advances to ASSIGNED; this implicit transition is system
// bookkeeping and bypasses the status policy.
func (t *Ticket) AssignToSpecialist(specialistID string) error {
	if strings.TrimSpace(specialistID) == "" {
		return apperrors.NewValidationError("specialist id cannot be empty", nil)
	}

	t.assignedSpecialistID = &specialistID
	t.updatedAt = time.Now().UTC()

	if t.status == TicketStatusNew {
		if err := t.ChangeStatus(TicketStatusAssigned); err != nil {
			return err
		}
	}

	t.recordChange(ChangeAssigned, nil, strPtr(specialistID), t.createdByID,
		fmt.Sprintf("Ticket assigned to specialist %s", specialistID))
	return nil
}

// AssignToTeam assigns the ticket to a team, auto-advancing NEW tickets
// to ASSIGNED the same way AssignToSpecialist does.
func (t *Ticket) AssignToTeam(teamID string) error {
	if strings.TrimSpace(teamID) == "" {
		return apperrors.NewValidationError("team id cannot be empty", nil)
	}

	t.assignedTeamID = &teamID
	t.updatedAt = time.Now().UTC()

	if t.status == TicketStatusNew {
		if err := t.ChangeStatus(TicketStatusAssigned); err != nil {
			return err
		}
	}

	t.recordChange(ChangeAssignedToTeam, nil, strPtr(teamID), t.createdByID,
		fmt.Sprintf("Ticket assigned to team %s", teamID))
	return nil
}

// MarkAsReadyForVerification stores a validated resolution and moves the
// ticket to READY_FOR_VERIFICATION. Legal only from IN_PROGRESS.
func (t *Ticket) MarkAsReadyForVerification(resolutionDescription string, resolutionType ResolutionType) error {
	if t.status != TicketStatusInProgress {
		return apperrors.NewConflict(
			fmt.Sprintf("cannot mark as ready for verification: current status is %s", t.status),
			map[string]any{"status": t.status})
	}

	resolution, err := NewResolution(resolutionType, resolutionDescription, nil)
	if err != nil {
		return err
	}

	t.resolution = &resolution
	if err := t.ChangeStatus(TicketStatusReadyForVerification); err != nil {
		return err
	}

	performedBy := t.createdByID
	if t.assignedSpecialistID != nil {
		performedBy = *t.assignedSpecialistID
	}
	t.recordChange(ChangeReadyForVerification,
		strPtr(string(TicketStatusInProgress)), strPtr(string(TicketStatusReadyForVerification)),
		performedBy, fmt.Sprintf("Marked as ready for verification: %s", resolutionType))
	return nil
}

// Escalate records an escalation on behalf of the ticket creator and
// moves the ticket to ESCALATED. When a new priority is supplied the
// priority changes and the SLA is recomputed. Externally validated
// escalation records go through AddEscalation instead.
func (t *Ticket) Escalate(reason string, newPriority *PriorityLevel) error {
	previousPriority := t.priority
	escalation, err := NewEscalation(reason, t.createdByID, EscalationWorkerInitiated, previousPriority, newPriority)
	if err != nil {
		return err
	}

	if newPriority != nil {
		t.priority = *newPriority
		t.sla = SLAForPriority(*newPriority)
	}

	t.escalations = append(t.escalations, escalation)

	previousStatus := t.status
	if err := t.ChangeStatus(TicketStatusEscalated); err != nil {
		return err
	}
	t.updatedAt = time.Now().UTC()

	t.recordChange(ChangeEscalated, strPtr(string(previousStatus)), strPtr(string(TicketStatusEscalated)),
		t.createdByID, fmt.Sprintf("Escalated: %s", reason))
	return nil
}

// AddEscalation attaches a pre-constructed escalation record. Used by
// the orchestration layer when the record is validated externally, e.g.
// worker-initiated or automatic escalations.
func (t *Ticket) AddEscalation(escalation Escalation) error {
	if strings.TrimSpace(escalation.Reason) == "" || strings.TrimSpace(escalation.EscalatedBy) == "" {
		return apperrors.NewValidationError("escalation record is incomplete", nil)
	}
	t.escalations = append(t.escalations, escalation)
	t.updatedAt = time.Now().UTC()
	return nil
}

// AddComment appends a comment and records it in the history.
func (t *Ticket) AddComment(authorID, content string, isInternal bool) error {
	comment, err := NewComment(authorID, content, isInternal)
	if err != nil {
		return err
	}
	t.comments = append(t.comments, comment)
	t.updatedAt = time.Now().UTC()

	t.recordChange(ChangeCommentAdded, nil, strPtr(content), authorID,
		fmt.Sprintf("Comment added (internal: %t)", isInternal))
	return nil
}

// AddAttachment appends attachment metadata and records it in the
// history. The binary content is stored by an external collaborator.
func (t *Ticket) AddAttachment(attachment Attachment) error {
	if strings.TrimSpace(attachment.FileName) == "" {
		return apperrors.NewValidationError("attachment is required", nil)
	}
	t.attachments = append(t.attachments, attachment)
	t.updatedAt = time.Now().UTC()

	t.recordChange(ChangeAttachmentAdded, nil, strPtr(attachment.FileName), t.createdByID,
		fmt.Sprintf("Attachment added: %s", attachment.FileName))
	return nil
}

// RecordSatisfaction stores the reporter's review. Repeated calls
// overwrite the previous satisfaction record.
func (t *Ticket) RecordSatisfaction(rating int, comment string, isProblemResolved bool) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": rating})
	}

	t.satisfaction = &Satisfaction{
		Rating:            rating,
		Comment:           comment,
		IsProblemResolved: isProblemResolved,
		FilledAt:          time.Now().UTC(),
	}
	t.updatedAt = time.Now().UTC()

	t.recordChange(ChangeSatisfactionRecorded, nil, strPtr(fmt.Sprintf("%d", rating)), t.createdByID,
		fmt.Sprintf("Satisfaction recorded: %d stars, problem resolved: %t", rating, isProblemResolved))
	return nil
}

// WasReproducedBefore reports whether any non-internal comment mentions
// reproduction or any history entry carries a REPRODUCED tag. Used to
// block unjustified NOT_REPRODUCIBLE resolutions.
func (t *Ticket) WasReproducedBefore() bool {
	for _, comment := range t.comments {
		if !comment.IsInternal && strings.Contains(strings.ToLower(comment.Content), "reproduce") {
			return true
		}
	}
	for _, entry := range t.history {
		if strings.Contains(strings.ToUpper(entry.ChangeType), "REPRODUCED") {
			return true
		}
	}
	return false
}

func (t *Ticket) recordChange(changeType string, previousValue, newValue *string, performedBy, description string) {
	t.history = append(t.history, newHistoryChange(changeType, previousValue, newValue, performedBy, description))
}

func (t *Ticket) ID() string                    { return t.id }
func (t *Ticket) Number() string                { return t.number }
func (t *Ticket) Title() string                 { return t.title }
func (t *Ticket) Description() string           { return t.description }
func (t *Ticket) Status() TicketStatus          { return t.status }
func (t *Ticket) Priority() PriorityLevel       { return t.priority }
func (t *Ticket) Category() TicketCategory      { return t.category }
func (t *Ticket) SLA() SLA                      { return t.sla }
func (t *Ticket) AssignedSpecialistID() *string { return t.assignedSpecialistID }
func (t *Ticket) AssignedTeamID() *string       { return t.assignedTeamID }
func (t *Ticket) CreatedByID() string           { return t.createdByID }
func (t *Ticket) CreatedAt() time.Time          { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time          { return t.updatedAt }
func (t *Ticket) ResolvedAt() *time.Time        { return t.resolvedAt }
func (t *Ticket) Resolution() *Resolution       { return t.resolution }
func (t *Ticket) Satisfaction() *Satisfaction   { return t.satisfaction }

// Comments returns a read-only copy of the comment list.
func (t *Ticket) Comments() []Comment {
	return append([]Comment(nil), t.comments...)
}

// Escalations returns a read-only copy of the escalation list.
func (t *Ticket) Escalations() []Escalation {
	return append([]Escalation(nil), t.escalations...)
}

// Attachments returns a read-only copy of the attachment list.
func (t *Ticket) Attachments() []Attachment {
	return append([]Attachment(nil), t.attachments...)
}

// History returns a read-only copy of the audit trail in append order.
func (t *Ticket) History() []HistoryChange {
	return append([]HistoryChange(nil), t.history...)
}

// EscalationCount returns how many times the ticket has been escalated.
func (t *Ticket) EscalationCount() int {
	return len(t.escalations)
}

func strPtr(s string) *string {
	return &s
}
