// Package document implements the Document repository using PostgreSQL.
// Blobs live in object storage; only metadata is persisted here.
package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `id, organization_id, matter_id, file_name, content_type,
       size_bytes, storage_key, extraction, extracted_text, uploaded_by, created_at, updated_at`

const createDocumentSQL = `
INSERT INTO documents (id, organization_id, matter_id, file_name, content_type,
                       size_bytes, storage_key, extraction, extracted_text,
                       uploaded_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const getDocumentByIDSQL = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND organization_id = $2`

const listDocumentsByMatterSQL = `
SELECT ` + documentColumns + `
FROM documents
WHERE organization_id = $1 AND matter_id = $2
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

const updateExtractionSQL = `
UPDATE documents SET extraction = $3, extracted_text = $4, updated_at = $5
WHERE id = $1 AND organization_id = $2`

// Create inserts document metadata.
func (r *Repo) Create(ctx context.Context, d domain.Document) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createDocumentSQL,
		d.ID, d.OrganizationID, d.MatterID, d.FileName, d.ContentType,
		d.SizeBytes, d.StorageKey, d.Extraction, d.ExtractedText,
		d.UploadedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "document", d.ID.String())
	}

	return nil
}

// GetByID returns a document scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, documentID uuid.UUID) (domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDocument(querier.QueryRow(ctx, getDocumentByIDSQL, documentID, orgID))
	if err != nil {
		return domain.Document{}, postgres.MapError(err, "document", documentID.String())
	}

	return d, nil
}

// ListByMatter returns a matter's documents, newest first.
func (r *Repo) ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listDocumentsByMatterSQL, orgID, matterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// UpdateExtraction persists extraction status and extracted text.
func (r *Repo) UpdateExtraction(ctx context.Context, d domain.Document) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateExtractionSQL,
		d.ID, d.OrganizationID, d.Extraction, d.ExtractedText, d.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "document", d.ID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", d.ID, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var (
		d          domain.Document
		extraction string
	)
	if err := row.Scan(&d.ID, &d.OrganizationID, &d.MatterID, &d.FileName, &d.ContentType,
		&d.SizeBytes, &d.StorageKey, &extraction, &d.ExtractedText,
		&d.UploadedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.Document{}, err
	}
	d.Extraction = domain.ExtractionStatus(extraction)
	return d, nil
}

func scanDocuments(rows pgx.Rows) ([]domain.Document, error) {
	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if docs == nil {
		docs = []domain.Document{}
	}

	return docs, nil
}
