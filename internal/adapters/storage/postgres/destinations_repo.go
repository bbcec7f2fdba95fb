package postgres

import (
	"context"
	"database/sql"

	"front-desk/internal/domain/destinations"
)

type DestinationsRepo struct {
	db *sql.DB
}

func NewDestinationsRepo(db *sql.DB) *DestinationsRepo {
	return &DestinationsRepo{db: db}
}

func (r *DestinationsRepo) List(ctx context.Context) ([]destinations.Destination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM destinations
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]destinations.Destination, 0)
	for rows.Next() {
		var d destinations.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DestinationsRepo) GetByID(ctx context.Context, id int64) (destinations.Destination, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM destinations
		WHERE id = $1
	`, id)

	var d destinations.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return destinations.Destination{}, destinations.ErrNotFound
		}
		return destinations.Destination{}, err
	}
	return d, nil
}

func (r *DestinationsRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM destinations WHERE id = $1)
	`, id).Scan(&ok)
	return ok, err
}
