package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

const pendingColumns = `id, email, name, dob, gender, class_name, stream, parent_name,
	phone, address, registration_number, status, created_at, updated_at`

// PendingStudentRepository handles admission-record data access.
type PendingStudentRepository struct {
	pool *pgxpool.Pool
}

// NewPendingStudentRepository creates a new PendingStudentRepository.
func NewPendingStudentRepository(pool *pgxpool.Pool) *PendingStudentRepository {
	return &PendingStudentRepository{pool: pool}
}

// Create inserts a new pending admission. A unique index on email turns a
// duplicate submission into a constraint violation (code 23505).
func (r *PendingStudentRepository) Create(ctx context.Context, p *model.PendingStudent) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO pending_students
		   (email, name, dob, gender, class_name, stream, parent_name, phone, address, registration_number, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		 RETURNING id, status, created_at, updated_at`,
		p.Email, p.Name, p.DOB, p.Gender, p.ClassName, p.Stream,
		p.ParentName, p.Phone, p.Address, p.RegistrationNumber,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

// GetByEmail retrieves a pending admission by email.
func (r *PendingStudentRepository) GetByEmail(ctx context.Context, email string) (*model.PendingStudent, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+pendingColumns+` FROM pending_students WHERE email = $1`, email)
	return scanPending(row)
}

// List retrieves all pending admissions, oldest first.
func (r *PendingStudentRepository) List(ctx context.Context) ([]model.PendingStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+pendingColumns+` FROM pending_students ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pendings []model.PendingStudent
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, err
		}
		pendings = append(pendings, *p)
	}
	return pendings, rows.Err()
}

// Approve runs the pending-to-student transition in a single transaction:
// the pending row is consumed with DELETE ... RETURNING (zero rows means a
// concurrent approval already won and pgx.ErrNoRows surfaces), the student
// record is inserted, and the matching user is upserted to the student
// role. Readers never observe a partial transition.
func (r *PendingStudentRepository) Approve(ctx context.Context, email string) (*model.Student, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback(ctx)

	p := &model.PendingStudent{}
	err = tx.QueryRow(ctx,
		`DELETE FROM pending_students WHERE email = $1
		 RETURNING email, name, dob, gender, class_name, stream, parent_name, phone, address, registration_number`,
		email,
	).Scan(&p.Email, &p.Name, &p.DOB, &p.Gender, &p.ClassName, &p.Stream,
		&p.ParentName, &p.Phone, &p.Address, &p.RegistrationNumber)
	if err != nil {
		return nil, err
	}

	s := &model.Student{
		Email:              p.Email,
		Name:               p.Name,
		Phone:              p.Phone,
		DOB:                p.DOB,
		Gender:             p.Gender,
		ParentName:         p.ParentName,
		Address:            p.Address,
		ClassName:          p.ClassName,
		Stream:             p.Stream,
		RegistrationNumber: p.RegistrationNumber,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO students
		   (email, name, phone, dob, gender, parent_name, address, class_name, stream, registration_number, approved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
		 RETURNING id, approved_at, created_at, updated_at`,
		s.Email, s.Name, s.Phone, s.DOB, s.Gender, s.ParentName,
		s.Address, s.ClassName, s.Stream, s.RegistrationNumber,
	).Scan(&s.ID, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}

	// The applicant may never have logged in, so the identity record is
	// created here if missing rather than silently skipped.
	_, err = tx.Exec(ctx,
		`INSERT INTO users (email, name, phone, role, enrolled_class_name, stream)
		 VALUES ($1, $2, $3, 'student', $4, $5)
		 ON CONFLICT (email) DO UPDATE SET
		   role = 'student',
		   enrolled_class_name = EXCLUDED.enrolled_class_name,
		   stream = EXCLUDED.stream,
		   updated_at = CURRENT_TIMESTAMP`,
		s.Email, s.Name, s.Phone, s.ClassName, s.Stream)
	if err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit approve: %w", err)
	}
	return s, nil
}

// DeleteByEmail removes a pending admission (rejection path). Returns the
// number of rows deleted.
func (r *PendingStudentRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pending_students WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// FindAlreadyEnrolled returns emails of pending records whose student row
// already exists. With the transactional approve this set stays empty; the
// reconciliation worker sweeps it anyway to catch rows left behind by
// older deployments or manual writes.
func (r *PendingStudentRepository) FindAlreadyEnrolled(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.email FROM pending_students p
		 JOIN students s ON s.email = p.email`)
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

func scanPending(row pgx.Row) (*model.PendingStudent, error) {
	p := &model.PendingStudent{}
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.DOB, &p.Gender, &p.ClassName, &p.Stream,
		&p.ParentName, &p.Phone, &p.Address, &p.RegistrationNumber, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
