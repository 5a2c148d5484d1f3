package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// Comment is a message attached to a ticket. Internal comments are
// visible to support staff only.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewComment validates and constructs a Comment.
func NewComment(authorID, content string, isInternal bool) (Comment, error) {
	if strings.TrimSpace(authorID) == "" {
		return Comment{}, apperrors.NewValidationError("comment author cannot be empty", nil)
	}
	if strings.TrimSpace(content) == "" {
		return Comment{}, apperrors.NewValidationError("comment content cannot be empty", nil)
	}
	return Comment{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		Content:    content,
		IsInternal: isInternal,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
