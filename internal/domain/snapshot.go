package domain

import "time"

// TicketSnapshot is the deliberate persistence view of the aggregate.
// Repositories marshal and restore tickets through it instead of
// reaching into aggregate state.
type TicketSnapshot struct {
	ID                   string          `json:"id"`
	Number               string          `json:"number"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Status               TicketStatus    `json:"status"`
	Priority             PriorityLevel   `json:"priority"`
	Category             TicketCategory  `json:"category"`
	SLA                  SLA             `json:"sla"`
	AssignedSpecialistID *string         `json:"assigned_specialist_id,omitempty"`
	AssignedTeamID       *string         `json:"assigned_team_id,omitempty"`
	CreatedByID          string          `json:"created_by_id"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	ResolvedAt           *time.Time      `json:"resolved_at,omitempty"`
	Resolution           *Resolution     `json:"resolution,omitempty"`
	Satisfaction         *Satisfaction   `json:"satisfaction,omitempty"`
	Comments             []Comment       `json:"comments"`
	Escalations          []Escalation    `json:"escalations"`
	Attachments          []Attachment    `json:"attachments"`
	History              []HistoryChange `json:"history"`
}

// Snapshot exports the full aggregate state.
func (t *Ticket) Snapshot() TicketSnapshot {
	return TicketSnapshot{
		ID:                   t.id,
		Number:               t.number,
		Title:                t.title,
		Description:          t.description,
		Status:               t.status,
		Priority:             t.priority,
		Category:             t.category,
		SLA:                  t.sla,
		AssignedSpecialistID: t.assignedSpecialistID,
		AssignedTeamID:       t.assignedTeamID,
		CreatedByID:          t.createdByID,
		CreatedAt:            t.createdAt,
		UpdatedAt:            t.updatedAt,
		ResolvedAt:           t.resolvedAt,
		Resolution:           t.resolution,
		Satisfaction:         t.satisfaction,
		Comments:             t.Comments(),
		Escalations:          t.Escalations(),
		Attachments:          t.Attachments(),
		History:              t.History(),
	}
}

// RestoreTicket rebuilds an aggregate from a stored snapshot without
// revalidating or re-recording history.
func RestoreTicket(s TicketSnapshot) *Ticket {
	return &Ticket{
		id:                   s.ID,
		number:               s.Number,
		title:                s.Title,
		description:          s.Description,
		status:               s.Status,
		priority:             s.Priority,
		category:             s.Category,
		sla:                  s.SLA,
		assignedSpecialistID: s.AssignedSpecialistID,
		assignedTeamID:       s.AssignedTeamID,
		createdByID:          s.CreatedByID,
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		resolvedAt:           s.ResolvedAt,
		resolution:           s.Resolution,
		satisfaction:         s.Satisfaction,
		comments:             append([]Comment(nil), s.Comments...),
		escalations:          append([]Escalation(nil), s.Escalations...),
		attachments:          append([]Attachment(nil), s.Attachments...),
		history:              append([]HistoryChange(nil), s.History...),
	}
}
