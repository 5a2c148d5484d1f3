package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
)

// SLAWorker periodically scans in-progress tickets and escalates the
// ones whose resolution deadline passed or that keep bouncing back.
type SLAWorker struct {
	cfg     config.SLAWorkerConfig
	tickets repository.TicketRepository
	service *service.TicketService
	policy  policy.AutoEscalationPolicy
	logger  *zap.Logger
}

// NewSLAWorker constructs the worker.
func NewSLAWorker(cfg config.SLAWorkerConfig, tickets repository.TicketRepository, ticketService *service.TicketService, autoPolicy policy.AutoEscalationPolicy, logger *zap.Logger) *SLAWorker {
	return &SLAWorker{
		cfg:     cfg,
		tickets: tickets,
		service: ticketService,
		policy:  autoPolicy,
		logger:  logger,
	}
}

// Run blocks, scanning on the configured interval until ctx cancels.
func (w *SLAWorker) Run(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("sla worker disabled")
		return
	}

	ticker := time.NewTicker(w.cfg.ScanInterval())
	defer ticker.Stop()

	w.logger.Info("sla worker started", zap.Duration("interval", w.cfg.ScanInterval()))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sla worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan inspects every in-progress ticket once.
func (w *SLAWorker) scan(ctx context.Context) {
	tickets, err := w.tickets.ListInStatus(ctx, domain.TicketStatusInProgress)
	if err != nil {
		w.logger.Error("sla scan failed", zap.Error(err))
		return
	}

	escalated := 0
	for _, ticket := range tickets {
		deadline := ticket.SLA().ResolutionDeadline(ticket.CreatedAt())
		decision := w.policy.ShouldAutoEscalate(ticket, ticket.Status(), deadline)
		if !decision.Allowed {
			continue
		}

		reason, escalationType := escalationCause(ticket, deadline)
		if err := w.service.AutoEscalate(ctx, ticket, reason, escalationType); err != nil {
			w.logger.Error("auto-escalation failed",
				zap.String("ticket_id", ticket.ID()), zap.Error(err))
			continue
		}
		escalated++
	}

	if escalated > 0 {
		w.logger.Info("sla scan complete",
			zap.Int("scanned", len(tickets)), zap.Int("escalated", escalated))
	}
}

// escalationCause classifies the trigger: a blown resolution deadline is
// an SLA timeout, otherwise the repeated-escalation threshold fired.
func escalationCause(ticket *domain.Ticket, deadline time.Time) (string, domain.EscalationType) {
	if time.Now().UTC().After(deadline) {
		return fmt.Sprintf("SLA resolution deadline exceeded (due %s)", deadline.UTC().Format(time.RFC3339)),
			domain.EscalationSLATimeout
	}
	return fmt.Sprintf("escalation threshold reached (%d escalations)", ticket.EscalationCount()),
		domain.EscalationAuto
}
