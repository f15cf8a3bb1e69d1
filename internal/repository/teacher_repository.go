package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// TeacherRepository handles staff-directory data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

// GetByID retrieves a directory entry by its ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, photo_url, subject, created_at, updated_at
		 FROM teachers WHERE id = $1`, id)
	return scanTeacher(row)
}

// List retrieves all directory entries by name.
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, photo_url, subject, created_at, updated_at
		 FROM teachers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, *t)
	}
	return teachers, rows.Err()
}

// Create inserts a new directory entry.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teachers (name, email, phone, photo_url, subject)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Email, t.Phone, t.PhotoURL, t.Subject,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies an existing directory entry. Returns pgx.ErrNoRows if absent.
func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`UPDATE teachers SET name = $2, email = $3, phone = $4, photo_url = $5, subject = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Email, t.Phone, t.PhotoURL, t.Subject,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// Delete removes a directory entry. Returns the number of rows deleted.
func (r *TeacherRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	t := &model.Teacher{}
	var email, phone, photoURL, subject *string
	err := row.Scan(&t.ID, &t.Name, &email, &phone, &photoURL, &subject, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if email != nil {
		t.Email = *email
	}
	if phone != nil {
		t.Phone = *phone
	}
	if photoURL != nil {
		t.PhotoURL = *photoURL
	}
	if subject != nil {
		t.Subject = *subject
	}
	return t, nil
}
