package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// NoticeRepository handles notice data access.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

// GetByID retrieves a notice by its ID.
func (r *NoticeRepository) GetByID(ctx context.Context, id int) (*model.Notice, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, title, body, author, created_at, updated_at FROM notices WHERE id = $1`, id)
	return scanNotice(row)
}

// List retrieves all notices, newest first.
func (r *NoticeRepository) List(ctx context.Context) ([]model.Notice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, author, created_at, updated_at FROM notices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

// Count returns the total number of notices. Used by the startup seeder's
// count-then-insert check.
func (r *NoticeRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notices`).Scan(&n)
	return n, err
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notices (title, body, author)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		n.Title, n.Body, n.Author,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// Update modifies an existing notice. Returns pgx.ErrNoRows if absent.
func (r *NoticeRepository) Update(ctx context.Context, n *model.Notice) error {
	return r.pool.QueryRow(ctx,
		`UPDATE notices SET title = $2, body = $3, author = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		n.ID, n.Title, n.Body, n.Author,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

// Delete removes a notice. Returns the number of rows deleted.
func (r *NoticeRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanNotice(row pgx.Row) (*model.Notice, error) {
	n := &model.Notice{}
	var author *string
	err := row.Scan(&n.ID, &n.Title, &n.Body, &author, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if author != nil {
		n.Author = *author
	}
	return n, nil
}
