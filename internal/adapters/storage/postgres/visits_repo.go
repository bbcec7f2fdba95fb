package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"front-desk/internal/domain/visits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

// Create inserta la visita y su entrada de origen (si existe) en una
// sola transacción: nunca queda visita con historial a medias.
func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit, origin *visits.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO visits (
			id, name, purpose, telephone,
			status, current_destination_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		v.ID,
		v.Name,
		v.Purpose,
		v.Telephone,
		string(v.Status),
		toNullID(v.CurrentDestinationID),
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if origin != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO visit_history (
				id, visit_id,
				from_destination_id, to_destination_id,
				received_by, timestamp
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			origin.ID,
			origin.VisitID,
			toNullID(origin.FromDestinationID),
			toNullID(origin.ToDestinationID),
			origin.ReceivedBy,
			origin.Timestamp,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *VisitsRepo) List(ctx context.Context, f visits.ListFilter) ([]visits.Visit, int, error) {
	where := []string{}
	args := []any{}
	argN := 1

	if name := strings.TrimSpace(f.Name); name != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", argN))
		args = append(args, "%"+name+"%")
		argN++
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argN))
		args = append(args, string(f.Status))
		argN++
	}
	if f.DestinationID != nil {
		where = append(where, fmt.Sprintf("current_destination_id = $%d", argN))
		args = append(args, *f.DestinationID)
		argN++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	// Total filtrado, sin paginar
	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visits"+whereClause, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, purpose, telephone,
		       status, current_destination_id,
		       created_at, updated_at
		FROM visits` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r *VisitsRepo) GetByID(ctx context.Context, id string) (visits.Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.Visit{}, visits.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, purpose, telephone,
		       status, current_destination_id,
		       created_at, updated_at
		FROM visits
		WHERE id = $1
	`, id)

	v, err := scanVisit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.ErrNotFound
		}
		return visits.Visit{}, err
	}
	return v, nil
}

func (r *VisitsRepo) HistoryByVisit(ctx context.Context, visitID string) ([]visits.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, visit_id,
		       from_destination_id, to_destination_id,
		       received_by, timestamp
		FROM visit_history
		WHERE visit_id = $1
		ORDER BY timestamp ASC, seq ASC
	`, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.HistoryEntry, 0)
	for rows.Next() {
		var h visits.HistoryEntry
		var from, to sql.NullInt64
		if err := rows.Scan(
			&h.ID,
			&h.VisitID,
			&from,
			&to,
			&h.ReceivedBy,
			&h.Timestamp,
		); err != nil {
			return nil, err
		}
		h.FromDestinationID = fromNullID(from)
		h.ToDestinationID = fromNullID(to)
		out = append(out, h)
	}
	return out, rows.Err()
}

// Transition aplica update + append en una transacción. El SELECT FOR
// UPDATE serializa receives concurrentes sobre la misma visita: el
// segundo espera al commit del primero y, si la visita quedó
// completada, recibe ErrInvalidState.
func (r *VisitsRepo) Transition(ctx context.Context, in visits.TransitionInput) (visits.Visit, visits.HistoryEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return visits.Visit{}, visits.HistoryEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, name, purpose, telephone,
		       status, current_destination_id,
		       created_at, updated_at
		FROM visits
		WHERE id = $1
		FOR UPDATE
	`, in.VisitID)

	v, err := scanVisit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.HistoryEntry{}, visits.ErrNotFound
		}
		return visits.Visit{}, visits.HistoryEntry{}, err
	}

	if v.Status == visits.StatusCompleted {
		return visits.Visit{}, visits.HistoryEntry{}, visits.ErrInvalidState
	}

	entry := visits.HistoryEntry{
		ID:                in.HistoryID,
		VisitID:           v.ID,
		FromDestinationID: v.CurrentDestinationID,
		ToDestinationID:   in.NextDestinationID,
		ReceivedBy:        in.ReceivedBy,
		Timestamp:         in.At,
	}

	if in.NextDestinationID != nil {
		v.CurrentDestinationID = in.NextDestinationID
	} else {
		v.Status = visits.StatusCompleted
	}
	v.UpdatedAt = in.At

	if _, err := tx.ExecContext(ctx, `
		UPDATE visits
		SET status = $2, current_destination_id = $3, updated_at = $4
		WHERE id = $1
	`,
		v.ID,
		string(v.Status),
		toNullID(v.CurrentDestinationID),
		v.UpdatedAt,
	); err != nil {
		return visits.Visit{}, visits.HistoryEntry{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO visit_history (
			id, visit_id,
			from_destination_id, to_destination_id,
			received_by, timestamp
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		entry.ID,
		entry.VisitID,
		toNullID(entry.FromDestinationID),
		toNullID(entry.ToDestinationID),
		entry.ReceivedBy,
		entry.Timestamp,
	); err != nil {
		return visits.Visit{}, visits.HistoryEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		return visits.Visit{}, visits.HistoryEntry{}, err
	}
	return v, entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (visits.Visit, error) {
	var v visits.Visit
	var status string
	var dest sql.NullInt64

	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Purpose,
		&v.Telephone,
		&status,
		&dest,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return visits.Visit{}, err
	}

	v.Status = visits.Status(status)
	v.CurrentDestinationID = fromNullID(dest)
	return v, nil
}

func toNullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func fromNullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
