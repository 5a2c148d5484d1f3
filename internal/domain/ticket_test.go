package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	ticket, err := NewTicket("ticket-1", "Printer broken", "The office printer does not print", CategoryIT, PriorityMedium, "worker-1")
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	return ticket
}

func TestNewTicket(t *testing.T) {
	ticket := newTestTicket(t)

	if ticket.Status() != TicketStatusNew {
		t.Errorf("status = %s, want %s", ticket.Status(), TicketStatusNew)
	}
	if !strings.HasPrefix(ticket.Number(), "T-") {
		t.Errorf("number = %q, want T- prefix", ticket.Number())
	}
	if got := ticket.SLA(); got.ReactionTime != 24*time.Hour || got.ResolutionTime != 72*time.Hour {
		t.Errorf("sla = %+v, want MEDIUM budgets", got)
	}

	history := ticket.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].ChangeType != ChangeCreated {
		t.Errorf("history[0].ChangeType = %s, want %s", history[0].ChangeType, ChangeCreated)
	}
}

func TestNewTicketValidation(t *testing.T) {
	cases := []struct {
		name        string
		id          string
		title       string
		description string
		category    TicketCategory
		priority    PriorityLevel
		createdBy   string
	}{
		{"empty title", "t-1", "", "desc", CategoryIT, PriorityLow, "w-1"},
		{"empty description", "t-1", "title", "", CategoryIT, PriorityLow, "w-1"},
		{"empty creator", "t-1", "title", "desc", CategoryIT, PriorityLow, ""},
		{"unknown category", "t-1", "title", "desc", TicketCategory("BOGUS"), PriorityLow, "w-1"},
		{"unknown priority", "t-1", "title", "desc", CategoryIT, PriorityLevel("BOGUS"), "w-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTicket(tc.id, tc.title, tc.description, tc.category, tc.priority, tc.createdBy)
			if !apperrors.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestChangeStatusSameStateIsNoOp(t *testing.T) {
	ticket := newTestTicket(t)
	before := ticket.UpdatedAt()
	historyLen := len(ticket.History())

	if err := ticket.ChangeStatus(TicketStatusNew); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if !ticket.UpdatedAt().Equal(before) {
		t.Error("updatedAt changed on same-state transition")
	}
	if len(ticket.History()) != historyLen {
		t.Error("history grew on same-state transition")
	}
}

func TestChangeStatusRecordsHistory(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.ChangeStatus(TicketStatusAssigned); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	history := ticket.History()
	last := history[len(history)-1]
	if last.ChangeType != ChangeStatusChanged {
		t.Errorf("ChangeType = %s, want %s", last.ChangeType, ChangeStatusChanged)
	}
	if last.PreviousValue == nil || *last.PreviousValue != string(TicketStatusNew) {
		t.Errorf("PreviousValue = %v, want NEW", last.PreviousValue)
	}
	if last.NewValue == nil || *last.NewValue != string(TicketStatusAssigned) {
		t.Errorf("NewValue = %v, want ASSIGNED", last.NewValue)
	}
}

func TestCloseSetsResolvedAtOnce(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.ChangeStatus(TicketStatusClosed); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	first := ticket.ResolvedAt()
	if first == nil {
		t.Fatal("resolvedAt not set on close")
	}

	if err := ticket.ChangeStatus(TicketStatusEscalated); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if err := ticket.ChangeStatus(TicketStatusClosed); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if !ticket.ResolvedAt().Equal(*first) {
		t.Error("resolvedAt rewritten on second close")
	}
}

func TestAssignToSpecialistAutoAdvances(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.AssignToSpecialist("spec-1"); err != nil {
		t.Fatalf("AssignToSpecialist: %v", err)
	}

	if ticket.Status() != TicketStatusAssigned {
		t.Errorf("status = %s, want ASSIGNED", ticket.Status())
	}
	if got := ticket.AssignedSpecialistID(); got == nil || *got != "spec-1" {
		t.Errorf("assignedSpecialistID = %v, want spec-1", got)
	}
}

func TestAssignToSpecialistKeepsLaterStatus(t *testing.T) {
	ticket := newTestTicket(t)
	mustChangeStatus(t, ticket, TicketStatusAssigned, TicketStatusInProgress)

	if err := ticket.AssignToSpecialist("spec-2"); err != nil {
		t.Fatalf("AssignToSpecialist: %v", err)
	}
	if ticket.Status() != TicketStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS after reassignment", ticket.Status())
	}
}

func TestMarkAsReadyForVerification(t *testing.T) {
	ticket := newTestTicket(t)
	mustChangeStatus(t, ticket, TicketStatusAssigned, TicketStatusInProgress)

	if err := ticket.MarkAsReadyForVerification("replaced the toner cartridge", ResolutionFixed); err != nil {
		t.Fatalf("MarkAsReadyForVerification: %v", err)
	}
	if ticket.Status() != TicketStatusReadyForVerification {
		t.Errorf("status = %s, want READY_FOR_VERIFICATION", ticket.Status())
	}
	resolution := ticket.Resolution()
	if resolution == nil || resolution.Type != ResolutionFixed {
		t.Errorf("resolution = %+v, want FIXED", resolution)
	}
}

func TestMarkAsReadyForVerificationRequiresInProgress(t *testing.T) {
	for _, status := range []TicketStatus{
		TicketStatusNew, TicketStatusAssigned, TicketStatusAwaitingResponse,
		TicketStatusReadyForVerification, TicketStatusEscalated, TicketStatusClosed,
	} {
		t.Run(string(status), func(t *testing.T) {
			ticket := newTestTicket(t)
			if status != TicketStatusNew {
				if err := ticket.ChangeStatus(status); err != nil {
					t.Fatalf("ChangeStatus(%s): %v", status, err)
				}
			}
			err := ticket.MarkAsReadyForVerification("done", ResolutionFixed)
			if !apperrors.IsConflict(err) {
				t.Errorf("err = %v, want conflict", err)
			}
		})
	}
}

func TestEscalateAppendsSingleRecord(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.Escalate("not actually fixed", nil); err != nil {
		t.Fatalf("Escalate: %v", err)
	}

	if ticket.Status() != TicketStatusEscalated {
		t.Errorf("status = %s, want ESCALATED", ticket.Status())
	}
	if ticket.EscalationCount() != 1 {
		t.Errorf("escalation count = %d, want 1", ticket.EscalationCount())
	}
	record := ticket.Escalations()[0]
	if record.EscalationType != EscalationWorkerInitiated {
		t.Errorf("type = %s, want WORKER_INITIATED", record.EscalationType)
	}
	if record.NewPriority != nil {
		t.Error("NewPriority set without a priority change")
	}
	if ticket.Priority() != PriorityMedium {
		t.Errorf("priority = %s, want unchanged MEDIUM", ticket.Priority())
	}
}

func TestEscalateWithPriorityChangeRecomputesSLA(t *testing.T) {
	ticket := newTestTicket(t)
	critical := PriorityCritical
	if err := ticket.Escalate("urgent now", &critical); err != nil {
		t.Fatalf("Escalate: %v", err)
	}

	if ticket.Priority() != PriorityCritical {
		t.Errorf("priority = %s, want CRITICAL", ticket.Priority())
	}
	sla := ticket.SLA()
	if sla.ReactionTime != time.Hour || sla.ResolutionTime != 4*time.Hour {
		t.Errorf("sla = %+v, want CRITICAL budgets", sla)
	}

	record := ticket.Escalations()[0]
	if record.PreviousPriority != PriorityMedium {
		t.Errorf("PreviousPriority = %s, want MEDIUM", record.PreviousPriority)
	}
	if record.NewPriority == nil || *record.NewPriority != PriorityCritical {
		t.Errorf("NewPriority = %v, want CRITICAL", record.NewPriority)
	}
}

func TestEscalateRequiresReason(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.Escalate("  ", nil); !apperrors.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
	if ticket.EscalationCount() != 0 {
		t.Error("escalation recorded despite validation failure")
	}
}

func TestRecordSatisfaction(t *testing.T) {
	ticket := newTestTicket(t)

	for _, rating := range []int{0, -1, 6} {
		if err := ticket.RecordSatisfaction(rating, "", true); !apperrors.IsValidation(err) {
			t.Errorf("rating %d: err = %v, want validation error", rating, err)
		}
	}

	if err := ticket.RecordSatisfaction(4, "good", true); err != nil {
		t.Fatalf("RecordSatisfaction: %v", err)
	}
	if err := ticket.RecordSatisfaction(2, "changed my mind", false); err != nil {
		t.Fatalf("RecordSatisfaction overwrite: %v", err)
	}

	satisfaction := ticket.Satisfaction()
	if satisfaction == nil || satisfaction.Rating != 2 {
		t.Errorf("satisfaction = %+v, want overwritten rating 2", satisfaction)
	}
}

func TestWasReproducedBefore(t *testing.T) {
	t.Run("no evidence", func(t *testing.T) {
		ticket := newTestTicket(t)
		if ticket.WasReproducedBefore() {
			t.Error("WasReproducedBefore = true on fresh ticket")
		}
	})

	t.Run("public comment mentions reproduction", func(t *testing.T) {
		ticket := newTestTicket(t)
		if err := ticket.AddComment("spec-1", "I was able to Reproduce the issue locally", false); err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		if !ticket.WasReproducedBefore() {
			t.Error("WasReproducedBefore = false, want true")
		}
	})

	t.Run("internal comment does not count", func(t *testing.T) {
		ticket := newTestTicket(t)
		if err := ticket.AddComment("spec-1", "could not reproduce", true); err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		if ticket.WasReproducedBefore() {
			t.Error("internal comment counted as reproduction evidence")
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	ticket := newTestTicket(t)
	if err := ticket.AssignToSpecialist("spec-1"); err != nil {
		t.Fatalf("AssignToSpecialist: %v", err)
	}
	if err := ticket.AddComment("spec-1", "on it", false); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	restored := RestoreTicket(ticket.Snapshot())
	if restored.ID() != ticket.ID() || restored.Status() != ticket.Status() {
		t.Errorf("restored = %s/%s, want %s/%s", restored.ID(), restored.Status(), ticket.ID(), ticket.Status())
	}
	if len(restored.Comments()) != len(ticket.Comments()) {
		t.Errorf("restored comments = %d, want %d", len(restored.Comments()), len(ticket.Comments()))
	}
	if len(restored.History()) != len(ticket.History()) {
		t.Errorf("restored history = %d, want %d", len(restored.History()), len(ticket.History()))
	}
}

func mustChangeStatus(t *testing.T, ticket *Ticket, statuses ...TicketStatus) {
	t.Helper()
	for _, status := range statuses {
		if err := ticket.ChangeStatus(status); err != nil {
			t.Fatalf("ChangeStatus(%s): %v", status, err)
		}
	}
}
