package domain

import (
	"testing"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

func TestNewTeamDefaults(t *testing.T) {
	team, err := NewTeam("team-1", "IT Support", CategoryIT, 0)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	if team.MaxTickets != 50 {
		t.Errorf("MaxTickets = %d, want default 50", team.MaxTickets)
	}
	if team.HasMembers() {
		t.Error("fresh team should have no members")
	}
}

func TestTeamMembership(t *testing.T) {
	team, err := NewTeam("team-1", "IT Support", CategoryIT, 10)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}

	if err := team.AddSpecialist("spec-1"); err != nil {
		t.Fatalf("AddSpecialist: %v", err)
	}
	if err := team.AddSpecialist("spec-1"); !apperrors.IsConflict(err) {
		t.Errorf("duplicate add: err = %v, want conflict", err)
	}
	if !team.HasMembers() {
		t.Error("HasMembers = false after add")
	}

	if err := team.RemoveSpecialist("spec-1"); err != nil {
		t.Fatalf("RemoveSpecialist: %v", err)
	}
	if err := team.RemoveSpecialist("spec-1"); err == nil {
		t.Error("removing absent specialist should fail")
	}
}
