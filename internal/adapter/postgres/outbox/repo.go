// Package outbox implements the outbox repository using PostgreSQL.
// Records carry deterministic string ids so duplicate creation attempts
// for the same event collapse via ON CONFLICT DO NOTHING.
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	"github.com/praxisworks/lawdesk-backend/internal/domain"
)

// Repo provides outbox persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new outbox repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createOutboxSQL = `
INSERT INTO outbox (
  id, organization_id, event_id, job_type, status, attempts, max_attempts,
  next_attempt_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO NOTHING`

// claimDueSQL atomically flips due pending records to processing and returns
// them. FOR UPDATE SKIP LOCKED lets concurrent dispatchers claim disjoint
// batches without blocking each other.
const claimDueSQL = `
UPDATE outbox SET status = 'processing', updated_at = $1
WHERE id IN (
  SELECT id FROM outbox
  WHERE status = 'pending' AND next_attempt_at <= $1
  ORDER BY next_attempt_at ASC
  LIMIT $2
  FOR UPDATE SKIP LOCKED
)
RETURNING id, organization_id, event_id, job_type, status, attempts,
          max_attempts, next_attempt_at, created_at, updated_at`

// Terminal and retry transitions are guarded on status = 'processing' so a
// record released back to pending by another path cannot be double-resolved.
const markDoneSQL = `
UPDATE outbox SET status = 'done', attempts = $2, updated_at = $3
WHERE id = $1 AND status = 'processing'`

const rescheduleSQL = `
UPDATE outbox SET status = 'pending', attempts = $2, next_attempt_at = $3, updated_at = $4
WHERE id = $1 AND status = 'processing'`

const markDeadSQL = `
UPDATE outbox SET status = 'dead', attempts = $2, updated_at = $3
WHERE id = $1 AND status = 'processing'`

const getOutboxByIDSQL = `
SELECT id, organization_id, event_id, job_type, status, attempts,
       max_attempts, next_attempt_at, created_at, updated_at
FROM outbox
WHERE id = $1`

const countByStatusSQL = `
SELECT status, count(*) FROM outbox GROUP BY status`

// Create inserts a pending record. A duplicate id is silently ignored: the
// existing record already carries the delivery obligation.
func (r *Repo) Create(ctx context.Context, rec domain.OutboxRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createOutboxSQL,
		rec.ID, rec.OrganizationID, rec.EventID, rec.JobType, rec.Status,
		rec.Attempts, rec.MaxAttempts, rec.NextAttemptAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "outbox", rec.ID)
	}

	return nil
}

// ClaimDue marks up to limit due pending records as processing and returns
// them, oldest due first.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, claimDueSQL, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due outbox records: %w", err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("claim due outbox records: %w", err)
	}

	return recs, nil
}

// MarkDone finishes a processing record successfully.
func (r *Repo) MarkDone(ctx context.Context, id string, attempts int) error {
	return r.resolve(ctx, markDoneSQL, id, attempts, nil)
}

// Reschedule returns a processing record to pending with a future due time.
func (r *Repo) Reschedule(ctx context.Context, id string, attempts int, nextAttemptAt time.Time) error {
	return r.resolve(ctx, rescheduleSQL, id, attempts, &nextAttemptAt)
}

// MarkDead parks a processing record permanently after exhausted attempts.
func (r *Repo) MarkDead(ctx context.Context, id string, attempts int) error {
	return r.resolve(ctx, markDeadSQL, id, attempts, nil)
}

func (r *Repo) resolve(ctx context.Context, sql, id string, attempts int, nextAttemptAt *time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC()

	args := []any{id, attempts}
	if nextAttemptAt != nil {
		args = append(args, *nextAttemptAt)
	}
	args = append(args, now)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "outbox", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox %s: not in processing state: %w", id, domain.ErrConflict)
	}

	return nil
}

// GetByID returns an outbox record by its deterministic id.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.OutboxRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rec, err := scanRecord(querier.QueryRow(ctx, getOutboxByIDSQL, id))
	if err != nil {
		return domain.OutboxRecord{}, postgres.MapError(err, "outbox", id)
	}

	return rec, nil
}

// CountByStatus returns record counts grouped by status. Used by admin stats.
func (r *Repo) CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("count outbox by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OutboxStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan outbox status count: %w", err)
		}
		counts[domain.OutboxStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox status counts: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.OutboxRecord, error) {
	var rec domain.OutboxRecord
	var status string

	if err := row.Scan(&rec.ID, &rec.OrganizationID, &rec.EventID, &rec.JobType,
		&status, &rec.Attempts, &rec.MaxAttempts,
		&rec.NextAttemptAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return domain.OutboxRecord{}, err
	}

	rec.Status = domain.OutboxStatus(status)
	return rec, nil
}

func scanRecords(rows pgx.Rows) ([]domain.OutboxRecord, error) {
	var recs []domain.OutboxRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if recs == nil {
		recs = []domain.OutboxRecord{}
	}

	return recs, nil
}
