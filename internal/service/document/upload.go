package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/adapter/s3store"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// UploadGrant is the presigned upload slot handed back to the caller.
type UploadGrant struct {
	Document  domain.Document
	UploadURL string
	ExpiresAt time.Time
}

// RequestUpload records document metadata and returns a presigned PUT URL.
// The client uploads the file straight to the bucket with it.
func (s *Service) RequestUpload(ctx context.Context, orgID uuid.UUID, input RequestUploadInput) (UploadGrant, error) {
	callerID, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature:    entitlement.FeatureDocuments,
		Permission: entitlement.PermDocumentUpload,
	})
	if err != nil {
		return UploadGrant{}, err
	}

	if err := input.Validate(s.maxUploadBytes); err != nil {
		return UploadGrant{}, err
	}

	if _, err := s.matters.GetByID(ctx, orgID, input.MatterID); err != nil {
		return UploadGrant{}, fmt.Errorf("get matter: %w", err)
	}

	now := s.now().UTC()
	doc := domain.Document{
		ID:             uuid.New(),
		OrganizationID: orgID,
		MatterID:       input.MatterID,
		FileName:       input.FileName,
		ContentType:    input.ContentType,
		SizeBytes:      input.SizeBytes,
		Extraction:     domain.ExtractionStatusNone,
		UploadedBy:     callerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	doc.StorageKey = s3store.DocumentKey(orgID, input.MatterID, doc.ID)

	if err := s.documents.Create(ctx, doc); err != nil {
		return UploadGrant{}, fmt.Errorf("create document: %w", err)
	}

	uploadURL, err := s.store.PresignUpload(ctx, doc.StorageKey, doc.ContentType)
	if err != nil {
		return UploadGrant{}, fmt.Errorf("presign upload: %w", err)
	}

	s.audit.Record(ctx, orgID, callerID, domain.AuditActionCreate, domain.EntityTypeDocument, &doc.ID,
		map[string]any{"file_name": doc.FileName, "size_bytes": doc.SizeBytes})

	s.emitter.EmitBestEffort(ctx, event.Params{
		OrganizationID: orgID,
		MatterID:       &doc.MatterID,
		EventType:      "document.uploaded",
		EntityType:     domain.EntityTypeDocument,
		EntityID:       doc.ID,
		Actor:          domain.UserActor(callerID),
		Payload:        map[string]any{"file_name": doc.FileName},
	})

	return UploadGrant{
		Document:  doc,
		UploadURL: uploadURL,
		ExpiresAt: now.Add(s.store.TTL()),
	}, nil
}
