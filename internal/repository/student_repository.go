package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

const studentColumns = `id, email, name, phone, photo_url, dob, gender, parent_name,
	address, class_name, stream, registration_number, approved_at, created_at, updated_at`

// StudentRepository handles enrolled-student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByEmail retrieves a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`, email)
	return scanStudent(row)
}

// List retrieves all students, optionally filtered by class name.
func (r *StudentRepository) List(ctx context.Context, className string) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	args := []interface{}{}
	if className != "" {
		query += ` WHERE class_name = $1`
		args = append(args, className)
	}
	query += ` ORDER BY class_name, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// UpdateProfile applies the student-facing partial update. The class_name
// column is deliberately untouched: enrollment class is owned by the
// admission workflow. Returns pgx.ErrNoRows if the student is absent.
func (r *StudentRepository) UpdateProfile(ctx context.Context, email string, req *model.UpdateStudentRequest) (*model.Student, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE students SET
		   name = COALESCE(NULLIF($2, ''), name),
		   phone = COALESCE(NULLIF($3, ''), phone),
		   photo_url = COALESCE(NULLIF($4, ''), photo_url),
		   parent_name = COALESCE(NULLIF($5, ''), parent_name),
		   address = COALESCE(NULLIF($6, ''), address),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE email = $1
		 RETURNING `+studentColumns,
		email, req.Name, req.Phone, req.PhotoURL, req.ParentName, req.Address)
	return scanStudent(row)
}

// MirrorProfile copies name/phone/photo from the identity record onto the
// student row if one exists. Zero rows affected is not an error: most
// users are not enrolled students.
func (r *StudentRepository) MirrorProfile(ctx context.Context, email, name, phone, photoURL string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET
		   name = COALESCE(NULLIF($2, ''), name),
		   phone = COALESCE(NULLIF($3, ''), phone),
		   photo_url = COALESCE(NULLIF($4, ''), photo_url),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE email = $1`,
		email, name, phone, photoURL)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// FindProfileDrift returns students whose mirrored profile fields differ
// from the identity record. Used by the reconciliation worker.
func (r *StudentRepository) FindProfileDrift(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.email FROM students s
		 JOIN users u ON u.email = s.email
		 WHERE s.name IS DISTINCT FROM u.name
		    OR (u.phone IS NOT NULL AND s.phone IS DISTINCT FROM u.phone)
		    OR (u.photo_url IS NOT NULL AND s.photo_url IS DISTINCT FROM u.photo_url)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

// SyncFromUser re-mirrors name/phone/photo from the identity record in a
// single statement. Idempotent.
func (r *StudentRepository) SyncFromUser(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students s SET
		   name = u.name,
		   phone = COALESCE(u.phone, s.phone),
		   photo_url = COALESCE(u.photo_url, s.photo_url),
		   updated_at = CURRENT_TIMESTAMP
		 FROM users u
		 WHERE s.email = $1 AND u.email = s.email`,
		email)
	return err
}

// Delete removes a student by email. Returns the number of rows deleted.
func (r *StudentRepository) Delete(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	var phone, photoURL *string
	err := row.Scan(
		&s.ID, &s.Email, &s.Name, &phone, &photoURL, &s.DOB, &s.Gender,
		&s.ParentName, &s.Address, &s.ClassName, &s.Stream,
		&s.RegistrationNumber, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		s.Phone = *phone
	}
	if photoURL != nil {
		s.PhotoURL = *photoURL
	}
	return s, nil
}
