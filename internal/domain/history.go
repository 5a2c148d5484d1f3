package domain

import (
	"time"

	"github.com/google/uuid"
)

// History change types recorded by the ticket aggregate. The tag is
// free-form: compound operations may record additional types.
const (
	ChangeCreated              = "CREATED"
	ChangeStatusChanged        = "STATUS_CHANGED"
	ChangeAssigned             = "ASSIGNED"
	ChangeAssignedToTeam       = "ASSIGNED_TO_TEAM"
	ChangeReadyForVerification = "READY_FOR_VERIFICATION"
	ChangeEscalated            = "ESCALATED"
	ChangeCommentAdded         = "COMMENT_ADDED"
	ChangeAttachmentAdded      = "ATTACHMENT_ADDED"
	ChangeSatisfactionRecorded = "SATISFACTION_RECORDED"
)

// HistoryChange is an immutable audit trail entry. Entries are appended
// in operation order and never removed.
type HistoryChange struct {
	ID            string    `json:"id"`
	ChangeType    string    `json:"change_type"`
	PreviousValue *string   `json:"previous_value,omitempty"`
	NewValue      *string   `json:"new_value,omitempty"`
	PerformedBy   string    `json:"performed_by"`
	Description   string    `json:"description,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

func newHistoryChange(changeType string, previousValue, newValue *string, performedBy, description string) HistoryChange {
	return HistoryChange{
		ID:            uuid.NewString(),
		ChangeType:    changeType,
		PreviousValue: previousValue,
		NewValue:      newValue,
		PerformedBy:   performedBy,
		Description:   description,
		ChangedAt:     time.Now().UTC(),
	}
}
