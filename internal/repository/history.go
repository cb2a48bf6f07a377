package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lottalogs/lottalogs/internal/model"
)

// HistoryRepository persists and reads executed searches.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository returns a HistoryRepository using the given pool.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Create inserts a search record and returns it with ID and CreatedAt set.
func (r *HistoryRepository) Create(ctx context.Context, rec *model.SearchRecord) error {
	query := `
		INSERT INTO search_history (id, search_text, index_pattern, size, min_timestamp, max_timestamp, total, status, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.SearchText,
		rec.Index,
		int64(rec.Size),
		rec.MinTimestamp,
		rec.MaxTimestamp,
		int64(rec.Total),
		rec.Status,
		rec.Error,
		rec.DurationMs,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// List returns at most limit records ordered by created_at descending.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]model.SearchRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, search_text, index_pattern, size, min_timestamp, max_timestamp, total, status, error, duration_ms, created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRecord)
}

// DeleteOlderThan removes records created before cutoff and reports how many
// were deleted.
func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM search_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.CollectableRow) (model.SearchRecord, error) {
	var (
		rec         model.SearchRecord
		size, total int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.SearchText,
		&rec.Index,
		&size,
		&rec.MinTimestamp,
		&rec.MaxTimestamp,
		&total,
		&rec.Status,
		&rec.Error,
		&rec.DurationMs,
		&rec.CreatedAt,
	)
	rec.Size, rec.Total = uint64(size), uint64(total)
	return rec, err
}
