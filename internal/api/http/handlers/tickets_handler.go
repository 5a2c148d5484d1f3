package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// TicketsHandler exposes the ticket lifecycle over HTTP.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User, service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.TicketCategory(strings.ToUpper(req.Category)),
		Priority:    domain.PriorityLevel(strings.ToUpper(req.Priority)),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	filter, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummaries(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// GetTicketByNumber GET /tickets/number/:number.
func (h *TicketsHandler) GetTicketByNumber(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	ticket, err := h.service.GetTicketByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// AssignTicket POST /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var ticket *domain.Ticket
	switch {
	case req.SpecialistID != nil && req.TeamID != nil:
		return apperrors.NewValidationError("provide either specialist_id or team_id, not both", nil)
	case req.SpecialistID != nil:
		ticket, err = h.service.AssignToSpecialist(c.UserContext(), principal.User, c.Params("id"), *req.SpecialistID)
	case req.TeamID != nil:
		ticket, err = h.service.AssignToTeam(c.UserContext(), principal.User, c.Params("id"), *req.TeamID)
	default:
		return apperrors.NewValidationError("specialist_id or team_id required", nil)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// ChangeStatus POST /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.ChangeStatus(c.UserContext(), principal.User, c.Params("id"),
		domain.TicketStatus(strings.ToUpper(req.Status)))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// MarkReady POST /tickets/:id/ready.
func (h *TicketsHandler) MarkReady(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.MarkReadyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.MarkReadyForVerification(c.UserContext(), principal.User, c.Params("id"),
		req.Description, domain.ResolutionType(strings.ToUpper(req.ResolutionType)))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// EscalateTicket POST /tickets/:id/escalate.
func (h *TicketsHandler) EscalateTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.EscalateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var newPriority *domain.PriorityLevel
	if req.NewPriority != nil {
		level := domain.PriorityLevel(strings.ToUpper(*req.NewPriority))
		newPriority = &level
	}

	ticket, err := h.service.EscalateTicket(c.UserContext(), principal.User, c.Params("id"), req.Reason, newPriority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// ReviewResolution POST /tickets/:id/review.
func (h *TicketsHandler) ReviewResolution(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReviewResolutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Accepted && strings.TrimSpace(req.RejectionReason) == "" {
		return apperrors.NewValidationError("rejection_reason required when rejecting", nil)
	}

	ticket, err := h.service.ReviewResolution(c.UserContext(), principal.User, c.Params("id"), service.ReviewResolutionInput{
		Accepted:          req.Accepted,
		RejectionReason:   req.RejectionReason,
		Rating:            req.Rating,
		Comment:           req.Comment,
		IsProblemResolved: req.IsProblemResolved,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.AddComment(c.UserContext(), principal.User, c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// AddAttachment POST /tickets/:id/attachments.
func (h *TicketsHandler) AddAttachment(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.AddAttachment(c.UserContext(), principal.User, c.Params("id"),
		req.FileName, req.FileSize, req.MimeType)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

// RecordSatisfaction POST /tickets/:id/satisfaction.
func (h *TicketsHandler) RecordSatisfaction(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SatisfactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.RecordSatisfaction(c.UserContext(), principal.User, c.Params("id"),
		req.Rating, req.Comment, req.IsProblemResolved)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket)})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseTicketQuery(c *fiber.Ctx) (repository.TicketFilter, error) {
	var query dto.ListTicketsQuery
	if err := c.QueryParser(&query); err != nil {
		return repository.TicketFilter{}, apperrors.NewValidationError("invalid query parameters", nil)
	}

	filter := repository.TicketFilter{Limit: query.Limit, Offset: query.Offset}
	for _, part := range splitList(query.Status) {
		filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.ToUpper(part)))
	}
	for _, part := range splitList(query.Priority) {
		filter.Priorities = append(filter.Priorities, domain.PriorityLevel(strings.ToUpper(part)))
	}
	for _, part := range splitList(query.Category) {
		filter.Categories = append(filter.Categories, domain.TicketCategory(strings.ToUpper(part)))
	}
	if query.CreatedBy != "" {
		filter.CreatedByID = &query.CreatedBy
	}
	if query.AssignedTo != "" {
		filter.AssignedSpecialistID = &query.AssignedTo
	}
	if query.Team != "" {
		filter.AssignedTeamID = &query.Team
	}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}
	return filter, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
