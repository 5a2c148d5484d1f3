package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/pkg/apperrors"
)

// Attachment stores file metadata owned by a ticket. The binary content
// lives in external storage keyed by the attachment id.
type Attachment struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewAttachment validates and constructs an Attachment.
func NewAttachment(fileName string, fileSize int64, mimeType, uploadedBy string) (Attachment, error) {
	if strings.TrimSpace(fileName) == "" {
		return Attachment{}, apperrors.NewValidationError("attachment file name cannot be empty", nil)
	}
	if fileSize <= 0 {
		return Attachment{}, apperrors.NewValidationError("attachment size must be positive", map[string]any{"file_size": fileSize})
	}
	if strings.TrimSpace(uploadedBy) == "" {
		return Attachment{}, apperrors.NewValidationError("attachment uploader cannot be empty", nil)
	}
	return Attachment{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FileSize:   fileSize,
		MimeType:   mimeType,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// StorageKey returns the object key under which the binary content is
// stored.
func (a Attachment) StorageKey() string {
	return a.ID + "/" + a.FileName
}
