package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// RollUpdateRepository handles roll-change record data access.
type RollUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewRollUpdateRepository creates a new RollUpdateRepository.
func NewRollUpdateRepository(pool *pgxpool.Pool) *RollUpdateRepository {
	return &RollUpdateRepository{pool: pool}
}

// List retrieves roll changes, optionally filtered by student email,
// newest first.
func (r *RollUpdateRepository) List(ctx context.Context, studentEmail string) ([]model.RollUpdate, error) {
	query := `SELECT id, student_email, class_name, previous_roll, new_roll, reason, created_at FROM roll_updates`
	args := []interface{}{}
	if studentEmail != "" {
		query += ` WHERE student_email = $1`
		args = append(args, studentEmail)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []model.RollUpdate
	for rows.Next() {
		var u model.RollUpdate
		var reason *string
		if err := rows.Scan(&u.ID, &u.StudentEmail, &u.ClassName, &u.PreviousRoll, &u.NewRoll, &reason, &u.CreatedAt); err != nil {
			return nil, err
		}
		if reason != nil {
			u.Reason = *reason
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// Create inserts a new roll-change record.
func (r *RollUpdateRepository) Create(ctx context.Context, u *model.RollUpdate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO roll_updates (student_email, class_name, previous_roll, new_roll, reason)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.StudentEmail, u.ClassName, u.PreviousRoll, u.NewRoll, u.Reason,
	).Scan(&u.ID, &u.CreatedAt)
}

// Delete removes a roll-change record. Returns the number of rows deleted.
func (r *RollUpdateRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roll_updates WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
