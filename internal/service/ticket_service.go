package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// CreateTicketInput carries validated request data for ticket creation.
type CreateTicketInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.PriorityLevel
}

// ReviewResolutionInput carries the reporter's verdict on a proposed
// resolution. Rating is optional; when present it is recorded as the
// satisfaction review alongside acceptance.
type ReviewResolutionInput struct {
	Accepted          bool
	RejectionReason   string
	Rating            *int
	Comment           string
	IsProblemResolved bool
}

// TicketServiceDependencies bundles collaborators for TicketService.
type TicketServiceDependencies struct {
	Tickets          repository.TicketRepository
	Users            repository.UserRepository
	Teams            repository.TeamRepository
	Cache            *repository.TicketCache
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	StatusPolicy     policy.StatusPolicy
	EscalationPolicy policy.WorkerEscalationPolicy
	ResolutionPolicy policy.SpecialistResolutionPolicy
}

// TicketService orchestrates the ticket lifecycle. Policies are
// consulted before any aggregate mutation; the aggregate itself is the
// last line of defense for its own invariants.
type TicketService struct {
	tickets          repository.TicketRepository
	users            repository.UserRepository
	teams            repository.TeamRepository
	cache            *repository.TicketCache
	dispatcher       events.Dispatcher
	logger           *zap.Logger
	statusPolicy     policy.StatusPolicy
	escalationPolicy policy.WorkerEscalationPolicy
	resolutionPolicy policy.SpecialistResolutionPolicy
}

// NewTicketService wires the service from its dependency bundle.
func NewTicketService(deps TicketServiceDependencies) *TicketService {
	return &TicketService{
		tickets:          deps.Tickets,
		users:            deps.Users,
		teams:            deps.Teams,
		cache:            deps.Cache,
		dispatcher:       deps.Dispatcher,
		logger:           deps.Logger,
		statusPolicy:     deps.StatusPolicy,
		escalationPolicy: deps.EscalationPolicy,
		resolutionPolicy: deps.ResolutionPolicy,
	}
}

// CreateTicket registers a new ticket reported by the actor.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, in CreateTicketInput) (*domain.Ticket, error) {
	ticket, err := domain.NewTicket(uuid.NewString(), in.Title, in.Description, in.Category, in.Priority, actor.ID)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID()),
		zap.String("number", ticket.Number()),
		zap.String("priority", string(ticket.Priority())))

	s.publish(ctx, events.EventTicketCreated, ticket.ID(), actor.ID, events.TicketCreatedPayload{
		Number:   ticket.Number(),
		Category: ticket.Category(),
		Priority: ticket.Priority(),
		Title:    ticket.Title(),
	})
	return ticket, nil
}

// GetTicket loads a ticket by id, reading through the cache.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("ticket cache read failed", zap.String("ticket_id", id), zap.Error(err))
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.cache.Set(ctx, ticket); err != nil {
		s.logger.Warn("ticket cache write failed", zap.String("ticket_id", id), zap.Error(err))
	}
	return ticket, nil
}

// GetTicketByNumber loads a ticket by its human-facing number.
func (s *TicketService) GetTicketByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]*domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// AssignToSpecialist assigns the ticket to an active specialist with
// remaining capacity and bumps their active-ticket count.
func (s *TicketService) AssignToSpecialist(ctx context.Context, actor *domain.User, ticketID, specialistID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	specialist, err := s.users.GetByID(ctx, specialistID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if specialist.Role != domain.RoleSpecialist {
		return nil, apperrors.NewValidationError("assignee is not a specialist", map[string]any{"user_id": specialistID})
	}
	if !specialist.CanAcceptMoreTickets() {
		return nil, apperrors.NewConflict("specialist cannot accept more tickets",
			map[string]any{"specialist_id": specialistID, "active": specialist.ActiveTicketCount, "limit": specialist.ActiveTicketLimit})
	}

	if err := ticket.AssignToSpecialist(specialistID); err != nil {
		return nil, err
	}
	if err := specialist.IncrementActiveTickets(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, specialist); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketAssigned, ticket.ID(), actor.ID, events.TicketAssignedPayload{
		SpecialistID: &specialistID,
	})
	return ticket, nil
}

// AssignToTeam assigns the ticket to a team with at least one member.
func (s *TicketService) AssignToTeam(ctx context.Context, actor *domain.User, ticketID, teamID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !team.HasMembers() {
		return nil, apperrors.NewConflict("team has no specialists", map[string]any{"team_id": teamID})
	}

	if err := ticket.AssignToTeam(teamID); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketAssigned, ticket.ID(), actor.ID, events.TicketAssignedPayload{
		TeamID: &teamID,
	})
	return ticket, nil
}

// ChangeStatus applies a user-requested status transition after the
// lifecycle policy approves it for the actor's role.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.User, ticketID string, target domain.TicketStatus) (*domain.Ticket, error) {
	if !target.Valid() {
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": target})
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	previous := ticket.Status()
	if decision := s.statusPolicy.CanTransition(previous, target, actor.Role); !decision.Allowed {
		return nil, apperrors.NewConflict(decision.Reason,
			map[string]any{"current_status": previous, "target_status": target})
	}

	if err := ticket.ChangeStatus(target); err != nil {
		return nil, err
	}
	if target == domain.TicketStatusClosed {
		s.releaseSpecialist(ctx, ticket)
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketStatusChanged, ticket.ID(), actor.ID, events.TicketStatusChangedPayload{
		OldStatus: previous,
		NewStatus: target,
	})
	return ticket, nil
}

// MarkReadyForVerification records the specialist's proposed resolution
// and moves the ticket to READY_FOR_VERIFICATION.
func (s *TicketService) MarkReadyForVerification(ctx context.Context, actor *domain.User, ticketID, description string, resolutionType domain.ResolutionType) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	resolution, err := domain.NewResolution(resolutionType, description, nil)
	if err != nil {
		return nil, err
	}
	if decision := s.resolutionPolicy.CanMarkReady(ticket, actor, resolution); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}

	if err := ticket.MarkAsReadyForVerification(description, resolutionType); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventResolutionProposed, ticket.ID(), actor.ID, events.ResolutionProposedPayload{
		ResolutionType: resolutionType,
		Description:    description,
	})
	return ticket, nil
}

// EscalateTicket handles a worker rejecting the proposed resolution.
func (s *TicketService) EscalateTicket(ctx context.Context, actor *domain.User, ticketID, reason string, newPriority *domain.PriorityLevel) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if decision := s.escalationPolicy.CanEscalate(ticket, actor, reason); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}

	if err := ticket.Escalate(reason, newPriority); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("ticket escalated",
		zap.String("ticket_id", ticket.ID()),
		zap.String("reason", reason))

	s.publish(ctx, events.EventTicketEscalated, ticket.ID(), actor.ID, events.TicketEscalatedPayload{
		Reason:         reason,
		EscalationType: domain.EscalationWorkerInitiated,
		NewPriority:    newPriority,
	})
	return ticket, nil
}

// ReviewResolution is the reporter's verdict on a ticket sitting in
// READY_FOR_VERIFICATION. Acceptance closes the ticket, optionally
// recording a satisfaction review; rejection escalates it back.
func (s *TicketService) ReviewResolution(ctx context.Context, actor *domain.User, ticketID string, in ReviewResolutionInput) (*domain.Ticket, error) {
	if !in.Accepted {
		return s.EscalateTicket(ctx, actor, ticketID, in.RejectionReason, nil)
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.CreatedByID() != actor.ID {
		return nil, apperrors.NewForbidden("only ticket creator can review the resolution")
	}

	previous := ticket.Status()
	if decision := s.statusPolicy.CanTransition(previous, domain.TicketStatusClosed, actor.Role); !decision.Allowed {
		return nil, apperrors.NewConflict(decision.Reason,
			map[string]any{"current_status": previous, "target_status": domain.TicketStatusClosed})
	}

	if err := ticket.ChangeStatus(domain.TicketStatusClosed); err != nil {
		return nil, err
	}
	if in.Rating != nil {
		if err := ticket.RecordSatisfaction(*in.Rating, in.Comment, in.IsProblemResolved); err != nil {
			return nil, err
		}
	}
	s.releaseSpecialist(ctx, ticket)

	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketStatusChanged, ticket.ID(), actor.ID, events.TicketStatusChangedPayload{
		OldStatus: previous,
		NewStatus: domain.TicketStatusClosed,
	})
	if in.Rating != nil {
		s.publish(ctx, events.EventSatisfactionRecorded, ticket.ID(), actor.ID, events.SatisfactionRecordedPayload{
			Rating:            *in.Rating,
			IsProblemResolved: in.IsProblemResolved,
		})
	}
	return ticket, nil
}

// AddComment appends a comment to the ticket.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, ticketID, content string, isInternal bool) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.AddComment(actor.ID, content, isInternal); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	preview := content
	if len(preview) > 80 {
		preview = preview[:80]
	}
	s.publish(ctx, events.EventTicketCommentAdded, ticket.ID(), actor.ID, events.TicketCommentAddedPayload{
		AuthorID:   actor.ID,
		IsInternal: isInternal,
		Preview:    preview,
	})
	return ticket, nil
}

// AddAttachment records attachment metadata on the ticket.
func (s *TicketService) AddAttachment(ctx context.Context, actor *domain.User, ticketID, fileName string, fileSize int64, mimeType string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	attachment, err := domain.NewAttachment(fileName, fileSize, mimeType, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := ticket.AddAttachment(attachment); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketAttachmentAdded, ticket.ID(), actor.ID, events.TicketAttachmentAddedPayload{
		FileName: attachment.FileName,
		FileSize: attachment.FileSize,
	})
	return ticket, nil
}

// RecordSatisfaction stores the reporter's review on a closed ticket.
func (s *TicketService) RecordSatisfaction(ctx context.Context, actor *domain.User, ticketID string, rating int, comment string, isProblemResolved bool) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.CreatedByID() != actor.ID {
		return nil, apperrors.NewForbidden("only ticket creator can record satisfaction")
	}

	if err := ticket.RecordSatisfaction(rating, comment, isProblemResolved); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSatisfactionRecorded, ticket.ID(), actor.ID, events.SatisfactionRecordedPayload{
		Rating:            rating,
		IsProblemResolved: isProblemResolved,
	})
	return ticket, nil
}

// AutoEscalate applies a system-initiated escalation on behalf of the
// SLA scanner. The caller decides the trigger; this records and saves.
func (s *TicketService) AutoEscalate(ctx context.Context, ticket *domain.Ticket, reason string, escalationType domain.EscalationType) error {
	escalation, err := domain.NewEscalation(reason, "system", escalationType, ticket.Priority(), nil)
	if err != nil {
		return err
	}
	if err := ticket.AddEscalation(escalation); err != nil {
		return err
	}
	if err := ticket.ChangeStatus(domain.TicketStatusEscalated); err != nil {
		return err
	}
	if err := s.persist(ctx, ticket); err != nil {
		return err
	}

	s.logger.Warn("ticket auto-escalated",
		zap.String("ticket_id", ticket.ID()),
		zap.String("escalation_type", string(escalationType)),
		zap.String("reason", reason))

	s.publish(ctx, events.EventTicketEscalated, ticket.ID(), "system", events.TicketEscalatedPayload{
		Reason:         reason,
		EscalationType: escalationType,
	})
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// persist saves the aggregate and refreshes the cache.
func (s *TicketService) persist(ctx context.Context, ticket *domain.Ticket) error {
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.cache.Set(ctx, ticket); err != nil {
		s.logger.Warn("ticket cache refresh failed", zap.String("ticket_id", ticket.ID()), zap.Error(err))
	}
	return nil
}

// releaseSpecialist frees a slot on the assigned specialist when a
// ticket closes. A missing specialist is logged, not fatal.
func (s *TicketService) releaseSpecialist(ctx context.Context, ticket *domain.Ticket) {
	assigned := ticket.AssignedSpecialistID()
	if assigned == nil {
		return
	}
	specialist, err := s.users.GetByID(ctx, *assigned)
	if err != nil {
		s.logger.Warn("assigned specialist lookup failed", zap.String("specialist_id", *assigned), zap.Error(err))
		return
	}
	specialist.DecrementActiveTickets()
	if err := s.users.Update(ctx, specialist); err != nil {
		s.logger.Warn("specialist capacity update failed", zap.String("specialist_id", *assigned), zap.Error(err))
	}
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, ticketID, actorID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
