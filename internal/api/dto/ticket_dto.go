package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest is the ticket creation payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// AssignTicketRequest assigns a ticket to a specialist or a team.
// Exactly one of the two ids should be set.
type AssignTicketRequest struct {
	SpecialistID *string `json:"specialist_id,omitempty"`
	TeamID       *string `json:"team_id,omitempty"`
}

// ChangeStatusRequest requests a lifecycle transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// MarkReadyRequest submits a proposed resolution.
type MarkReadyRequest struct {
	ResolutionType string `json:"resolution_type"`
	Description    string `json:"description"`
}

// EscalateTicketRequest rejects a proposed resolution.
type EscalateTicketRequest struct {
	Reason      string  `json:"reason"`
	NewPriority *string `json:"new_priority,omitempty"`
}

// ReviewResolutionRequest is the reporter's verdict. When accepting, an
// optional rating records the satisfaction review in the same call.
type ReviewResolutionRequest struct {
	Accepted          bool   `json:"accepted"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
	Rating            *int   `json:"rating,omitempty"`
	Comment           string `json:"comment,omitempty"`
	IsProblemResolved bool   `json:"is_problem_resolved,omitempty"`
}

// AddCommentRequest appends a comment.
type AddCommentRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"is_internal"`
}

// AddAttachmentRequest records attachment metadata.
type AddAttachmentRequest struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type"`
}

// SatisfactionRequest records the reporter's review.
type SatisfactionRequest struct {
	Rating            int    `json:"rating"`
	Comment           string `json:"comment,omitempty"`
	IsProblemResolved bool   `json:"is_problem_resolved"`
}

// ListTicketsQuery captures the supported list filters.
type ListTicketsQuery struct {
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	Category   string `query:"category"`
	CreatedBy  string `query:"created_by"`
	AssignedTo string `query:"assigned_to"`
	Team       string `query:"team"`
	Search     string `query:"search"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// TicketSummary is the list-view projection.
type TicketSummary struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	Category   string     `json:"category"`
	CreatedBy  string     `json:"created_by"`
	AssignedTo *string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// SLAView exposes the SLA budgets and deadlines.
type SLAView struct {
	Priority           string    `json:"priority"`
	ReactionHours      float64   `json:"reaction_hours"`
	ResolutionHours    float64   `json:"resolution_hours"`
	ReactionDeadline   time.Time `json:"reaction_deadline"`
	ResolutionDeadline time.Time `json:"resolution_deadline"`
}

// TicketDetail is the full single-ticket view.
type TicketDetail struct {
	TicketSummary
	Description  string                 `json:"description"`
	SLA          SLAView                `json:"sla"`
	TeamID       *string                `json:"team_id,omitempty"`
	Resolution   *domain.Resolution     `json:"resolution,omitempty"`
	Satisfaction *domain.Satisfaction   `json:"satisfaction,omitempty"`
	Comments     []domain.Comment       `json:"comments"`
	Escalations  []domain.Escalation    `json:"escalations"`
	Attachments  []domain.Attachment    `json:"attachments"`
	History      []domain.HistoryChange `json:"history"`
}

// NewTicketSummary projects the aggregate into its list view.
func NewTicketSummary(t *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Status:     string(t.Status()),
		Priority:   string(t.Priority()),
		Category:   string(t.Category()),
		CreatedBy:  t.CreatedByID(),
		AssignedTo: t.AssignedSpecialistID(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
		ResolvedAt: t.ResolvedAt(),
	}
}

// NewTicketDetail projects the aggregate into its detail view.
func NewTicketDetail(t *domain.Ticket) TicketDetail {
	sla := t.SLA()
	return TicketDetail{
		TicketSummary: NewTicketSummary(t),
		Description:   t.Description(),
		SLA: SLAView{
			Priority:           string(sla.Priority),
			ReactionHours:      sla.ReactionTime.Hours(),
			ResolutionHours:    sla.ResolutionTime.Hours(),
			ReactionDeadline:   sla.ReactionDeadline(t.CreatedAt()),
			ResolutionDeadline: sla.ResolutionDeadline(t.CreatedAt()),
		},
		TeamID:       t.AssignedTeamID(),
		Resolution:   t.Resolution(),
		Satisfaction: t.Satisfaction(),
		Comments:     t.Comments(),
		Escalations:  t.Escalations(),
		Attachments:  t.Attachments(),
		History:      t.History(),
	}
}

// NewTicketSummaries maps a ticket slice to its list view.
func NewTicketSummaries(tickets []*domain.Ticket) []TicketSummary {
	result := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, NewTicketSummary(t))
	}
	return result
}
