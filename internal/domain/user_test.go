package domain

import (
	"testing"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

func TestNewUserSpecialistDefaults(t *testing.T) {
	user, err := NewUser("u-1", "ada@example.com", "Ada", "Nowak", RoleSpecialist, AccountActive)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if user.ActiveTicketLimit != 10 {
		t.Errorf("ActiveTicketLimit = %d, want 10", user.ActiveTicketLimit)
	}
	if !user.CanAcceptMoreTickets() {
		t.Error("fresh specialist should accept tickets")
	}
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name  string
		email string
		role  UserRole
	}{
		{"bad email", "not-an-email", RoleWorker},
		{"unknown role", "a@example.com", UserRole("GUEST")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser("u-1", tc.email, "A", "B", tc.role, AccountActive)
			if !apperrors.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSpecialistCapacity(t *testing.T) {
	user, err := NewUser("u-1", "ada@example.com", "Ada", "Nowak", RoleSpecialist, AccountActive)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	for i := 0; i < user.ActiveTicketLimit; i++ {
		if err := user.IncrementActiveTickets(); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}
	if user.CanAcceptMoreTickets() {
		t.Error("specialist at limit should not accept more tickets")
	}
	if err := user.IncrementActiveTickets(); !apperrors.IsConflict(err) {
		t.Errorf("err = %v, want conflict at limit", err)
	}

	user.DecrementActiveTickets()
	if !user.CanAcceptMoreTickets() {
		t.Error("specialist should accept tickets again after release")
	}
}

func TestDecrementNeverGoesNegative(t *testing.T) {
	user, _ := NewUser("u-1", "ada@example.com", "Ada", "Nowak", RoleSpecialist, AccountActive)
	user.DecrementActiveTickets()
	if user.ActiveTicketCount != 0 {
		t.Errorf("ActiveTicketCount = %d, want 0", user.ActiveTicketCount)
	}
}

func TestWorkerIsNotAcceptingTickets(t *testing.T) {
	user, err := NewUser("u-2", "bob@example.com", "Bob", "Lee", RoleWorker, AccountActive)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if user.CanAcceptMoreTickets() {
		t.Error("worker should never report ticket capacity")
	}
}

func TestIsActive(t *testing.T) {
	for _, tc := range []struct {
		status AccountStatus
		want   bool
	}{
		{AccountActive, true},
		{AccountInactive, false},
		{AccountSuspended, false},
	} {
		user, err := NewUser("u-1", "a@example.com", "A", "B", RoleWorker, tc.status)
		if err != nil {
			t.Fatalf("NewUser(%s): %v", tc.status, err)
		}
		if user.IsActive() != tc.want {
			t.Errorf("IsActive(%s) = %t, want %t", tc.status, user.IsActive(), tc.want)
		}
	}
}
