package domain

import (
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// ResolutionType describes how a ticket was resolved.
type ResolutionType string

const (
	ResolutionFixed           ResolutionType = "FIXED"
	ResolutionWorkaround      ResolutionType = "WORKAROUND"
	ResolutionNotReproducible ResolutionType = "NOT_REPRODUCIBLE"
	ResolutionWontFix         ResolutionType = "WONT_FIX"
	ResolutionDuplicate       ResolutionType = "DUPLICATE"
)

// Valid reports whether t is a known resolution type.
func (t ResolutionType) Valid() bool {
	switch t {
	case ResolutionFixed, ResolutionWorkaround, ResolutionNotReproducible,
		ResolutionWontFix, ResolutionDuplicate:
		return true
	}
	return false
}

// Resolution is the immutable record of how a ticket was resolved. Set
// once when the ticket is marked ready for verification.
type Resolution struct {
	Type        ResolutionType `json:"type"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewResolution validates and constructs a Resolution.
func NewResolution(resolutionType ResolutionType, description string, tags []string) (Resolution, error) {
	if !resolutionType.Valid() {
		return Resolution{}, apperrors.NewValidationError("unknown resolution type", map[string]any{"type": resolutionType})
	}
	if strings.TrimSpace(description) == "" {
		return Resolution{}, apperrors.NewValidationError("resolution description cannot be empty", nil)
	}
	return Resolution{
		Type:        resolutionType,
		Description: description,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
