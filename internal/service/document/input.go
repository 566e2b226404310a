package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// RequestUploadInput describes a file the caller intends to upload.
type RequestUploadInput struct {
	MatterID    uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
}

// Validate checks the input against maxBytes and returns a validation
// error if invalid.
func (in RequestUploadInput) Validate(maxBytes int64) error {
	var fieldErrors []domain.FieldError

	if in.MatterID == uuid.Nil {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "matter_id", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.FileName) == "" {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "file_name", Message: "must not be empty"})
	}
	if in.ContentType == "" {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "content_type", Message: "must not be empty"})
	}
	if in.SizeBytes <= 0 {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "size_bytes", Message: "must be positive"})
	} else if in.SizeBytes > maxBytes {
		fieldErrors = append(fieldErrors, domain.FieldError{Field: "size_bytes", Message: "exceeds the upload size limit"})
	}

	if len(fieldErrors) > 0 {
		return domain.NewValidationErrors(fieldErrors)
	}

	return nil
}
