package postgres

import (
	"context"
	"database/sql"
	"time"

	"front-desk/internal/domain/stats"
)

type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) CountCreatedBetween(ctx context.Context, from, to time.Time, destinationID *int64) (stats.Summary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM visits
		WHERE created_at >= $1 AND created_at <= $2
	`
	args := []any{from, to}
	if destinationID != nil {
		query += " AND current_destination_id = $3"
		args = append(args, *destinationID)
	}

	var out stats.Summary
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&out.Total,
		&out.Pending,
		&out.Completed,
	); err != nil && err != sql.ErrNoRows {
		return stats.Summary{}, err
	}
	return out, nil
}
