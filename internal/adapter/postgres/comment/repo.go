// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createCommentSQL = `
INSERT INTO comments (id, organization_id, matter_id, author_id, body, visibility, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const getCommentByIDSQL = `
SELECT id, organization_id, matter_id, author_id, body, visibility, created_at
FROM comments
WHERE id = $1 AND organization_id = $2`

const deleteCommentSQL = `
DELETE FROM comments
WHERE id = $1 AND organization_id = $2`

const listCommentsByMatterSQL = `
SELECT id, organization_id, matter_id, author_id, body, visibility, created_at
FROM comments
WHERE organization_id = $1 AND matter_id = $2
ORDER BY created_at ASC
LIMIT $3 OFFSET $4`

// Create inserts a new comment.
func (r *Repo) Create(ctx context.Context, c domain.Comment) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createCommentSQL,
		c.ID, c.OrganizationID, c.MatterID, c.AuthorID, c.Body, c.Visibility, c.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "comment", c.ID.String())
	}

	return nil
}

// GetByID returns a comment scoped by organization.
func (r *Repo) GetByID(ctx context.Context, orgID, commentID uuid.UUID) (domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(querier.QueryRow(ctx, getCommentByIDSQL, commentID, orgID))
	if err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", commentID.String())
	}

	return c, nil
}

// Delete removes a comment scoped by organization.
func (r *Repo) Delete(ctx context.Context, orgID, commentID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteCommentSQL, commentID, orgID)
	if err != nil {
		return postgres.MapError(err, "comment", commentID.String())
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	return nil
}

// ListByMatter returns a matter's comments in chronological order.
func (r *Repo) ListByMatter(ctx context.Context, orgID, matterID uuid.UUID, limit, offset int) ([]domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listCommentsByMatterSQL, orgID, matterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments, err := scanComments(rows)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var (
		c          domain.Comment
		visibility string
	)
	if err := row.Scan(&c.ID, &c.OrganizationID, &c.MatterID, &c.AuthorID,
		&c.Body, &visibility, &c.CreatedAt); err != nil {
		return domain.Comment{}, err
	}
	c.Visibility = domain.Audience(visibility)
	return c, nil
}

func scanComments(rows pgx.Rows) ([]domain.Comment, error) {
	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, nil
}
