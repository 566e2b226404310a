package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is metadata for a blob-backed file attached to a matter.
// The blob itself lives in object storage under StorageKey.
type Document struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	MatterID       uuid.UUID
	FileName       string
	ContentType    string
	SizeBytes      int64
	StorageKey     string
	Extraction     ExtractionStatus
	ExtractedText  *string
	UploadedBy     uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
