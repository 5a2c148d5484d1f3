package domain

import "time"

// PriorityLevel enumerates ticket urgency. Priority may change only
// through escalation.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "LOW"
	PriorityMedium   PriorityLevel = "MEDIUM"
	PriorityHigh     PriorityLevel = "HIGH"
	PriorityCritical PriorityLevel = "CRITICAL"
)

// Valid reports whether p is a known priority level.
func (p PriorityLevel) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// SLA holds the reaction and resolution time budgets derived from a
// ticket's priority. Recomputed whenever an escalation changes priority.
type SLA struct {
	Priority       PriorityLevel `json:"priority"`
	ReactionTime   time.Duration `json:"reaction_time"`
	ResolutionTime time.Duration `json:"resolution_time"`
}

// SLAForPriority returns the SLA budgets for the given priority level.
func SLAForPriority(level PriorityLevel) SLA {
	var reaction, resolution time.Duration
	switch level {
	case PriorityLow:
		reaction, resolution = 48*time.Hour, 168*time.Hour
	case PriorityMedium:
		reaction, resolution = 24*time.Hour, 72*time.Hour
	case PriorityHigh:
		reaction, resolution = 4*time.Hour, 24*time.Hour
	case PriorityCritical:
		reaction, resolution = time.Hour, 4*time.Hour
	}
	return SLA{Priority: level, ReactionTime: reaction, ResolutionTime: resolution}
}

// ReactionDeadline returns the moment by which a reaction is due for a
// ticket created at the given time.
func (s SLA) ReactionDeadline(createdAt time.Time) time.Time {
	return createdAt.Add(s.ReactionTime)
}

// ResolutionDeadline returns the moment by which resolution is due for a
// ticket created at the given time.
func (s SLA) ResolutionDeadline(createdAt time.Time) time.Time {
	return createdAt.Add(s.ResolutionTime)
}
