package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/internal/event"
)

// RequestExtraction queues a document for text extraction.
func (s *Service) RequestExtraction(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error) {
	_, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureTextExtraction,
	})
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.documents.GetByID(ctx, orgID, documentID)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}

	switch doc.Extraction {
	case domain.ExtractionStatusNone, domain.ExtractionStatusFailed:
	case domain.ExtractionStatusPending:
		return doc, nil // already queued
	default:
		return domain.Document{}, fmt.Errorf("extraction is %s: %w", doc.Extraction, domain.ErrConflict)
	}

	doc.Extraction = domain.ExtractionStatusPending
	doc.UpdatedAt = s.now().UTC()

	if err := s.documents.UpdateExtraction(ctx, doc); err != nil {
		return domain.Document{}, fmt.Errorf("update extraction: %w", err)
	}

	return doc, nil
}

// CompleteExtraction records the outcome of a pending extraction. The
// extraction worker calls it with a member credential for the document's
// org; the emitted event still carries the system actor because no end
// user initiated the mutation.
func (s *Service) CompleteExtraction(ctx context.Context, orgID, documentID uuid.UUID, text *string, failed bool) (domain.Document, error) {
	_, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureTextExtraction,
	})
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.documents.GetByID(ctx, orgID, documentID)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	if doc.Extraction != domain.ExtractionStatusPending {
		return domain.Document{}, fmt.Errorf("extraction is %s: %w", doc.Extraction, domain.ErrConflict)
	}

	if failed {
		doc.Extraction = domain.ExtractionStatusFailed
		doc.ExtractedText = nil
	} else {
		doc.Extraction = domain.ExtractionStatusExtracted
		doc.ExtractedText = text
	}
	doc.UpdatedAt = s.now().UTC()

	if err := s.documents.UpdateExtraction(ctx, doc); err != nil {
		return domain.Document{}, fmt.Errorf("update extraction: %w", err)
	}

	if !failed {
		s.emitter.EmitBestEffort(ctx, event.Params{
			OrganizationID: orgID,
			MatterID:       &doc.MatterID,
			EventType:      "document.extracted",
			EntityType:     domain.EntityTypeDocument,
			EntityID:       doc.ID,
			Actor:          domain.SystemActor(),
			Payload:        map[string]any{"file_name": doc.FileName},
		})
	}

	return doc, nil
}
