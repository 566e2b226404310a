package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// DownloadGrant is a short-lived presigned GET URL for a document.
type DownloadGrant struct {
	Document    domain.Document
	DownloadURL string
	ExpiresAt   time.Time
}

// GetDownload returns the document with a presigned download URL.
func (s *Service) GetDownload(ctx context.Context, orgID, documentID uuid.UUID) (DownloadGrant, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureDocuments,
	}); err != nil {
		return DownloadGrant{}, err
	}

	doc, err := s.documents.GetByID(ctx, orgID, documentID)
	if err != nil {
		return DownloadGrant{}, fmt.Errorf("get document: %w", err)
	}

	downloadURL, err := s.store.PresignDownload(ctx, doc.StorageKey)
	if err != nil {
		return DownloadGrant{}, fmt.Errorf("presign download: %w", err)
	}

	return DownloadGrant{
		Document:    doc,
		DownloadURL: downloadURL,
		ExpiresAt:   s.now().UTC().Add(s.store.TTL()),
	}, nil
}

// ListByMatter returns the matter's documents, newest first.
func (s *Service) ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature: entitlement.FeatureDocuments,
	}); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := s.documents.ListByMatter(ctx, orgID, matterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}
