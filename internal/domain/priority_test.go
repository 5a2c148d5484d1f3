package domain

import (
	"testing"
	"time"
)

func TestSLAForPriority(t *testing.T) {
	cases := []struct {
		priority   PriorityLevel
		reaction   time.Duration
		resolution time.Duration
	}{
		{PriorityLow, 48 * time.Hour, 168 * time.Hour},
		{PriorityMedium, 24 * time.Hour, 72 * time.Hour},
		{PriorityHigh, 4 * time.Hour, 24 * time.Hour},
		{PriorityCritical, time.Hour, 4 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(string(tc.priority), func(t *testing.T) {
			sla := SLAForPriority(tc.priority)
			if sla.ReactionTime != tc.reaction {
				t.Errorf("reaction = %s, want %s", sla.ReactionTime, tc.reaction)
			}
			if sla.ResolutionTime != tc.resolution {
				t.Errorf("resolution = %s, want %s", sla.ResolutionTime, tc.resolution)
			}
		})
	}
}

func TestSLADeadlines(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	sla := SLAForPriority(PriorityHigh)

	if got := sla.ReactionDeadline(createdAt); !got.Equal(createdAt.Add(4 * time.Hour)) {
		t.Errorf("reaction deadline = %s", got)
	}
	if got := sla.ResolutionDeadline(createdAt); !got.Equal(createdAt.Add(24 * time.Hour)) {
		t.Errorf("resolution deadline = %s", got)
	}
}
