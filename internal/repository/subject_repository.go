package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// GetByID retrieves a subject by its ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, class_id, name, code, teacher_name, created_at, updated_at
		 FROM subjects WHERE id = $1`, id)
	return scanSubject(row)
}

// List retrieves all subjects, optionally filtered by class.
func (r *SubjectRepository) List(ctx context.Context, classID int) ([]model.Subject, error) {
	query := `SELECT id, class_id, name, code, teacher_name, created_at, updated_at FROM subjects`
	args := []interface{}{}
	if classID > 0 {
		query += ` WHERE class_id = $1`
		args = append(args, classID)
	}
	query += ` ORDER BY class_id, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (class_id, name, code, teacher_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.ClassID, s.Name, s.Code, s.TeacherName,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing subject. Returns pgx.ErrNoRows if absent.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`UPDATE subjects SET class_id = $2, name = $3, code = $4, teacher_name = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		s.ID, s.ClassID, s.Name, s.Code, s.TeacherName,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// Delete removes a subject by its ID. Returns the number of rows deleted.
func (r *SubjectRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSubject(row pgx.Row) (*model.Subject, error) {
	s := &model.Subject{}
	var code, teacherName *string
	err := row.Scan(&s.ID, &s.ClassID, &s.Name, &code, &teacherName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if code != nil {
		s.Code = *code
	}
	if teacherName != nil {
		s.TeacherName = *teacherName
	}
	return s, nil
}
