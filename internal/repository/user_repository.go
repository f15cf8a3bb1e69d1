package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shikkhaloy/school-backend/internal/model"
)

const userColumns = `id, email, name, phone, photo_url, role, enrolled_class_name, stream,
	shift, class_time, assigned_classes, subjects, created_at, updated_at`

// UserRepository handles identity-record data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// List retrieves all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpsertOnLogin creates the user on first login (role "user") or refreshes
// name/photo from the identity provider on subsequent logins.
func (r *UserRepository) UpsertOnLogin(ctx context.Context, email, name, photoURL string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, photo_url, role)
		 VALUES ($1, $2, $3, 'user')
		 ON CONFLICT (email) DO UPDATE SET
		   name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
		   photo_url = COALESCE(NULLIF(EXCLUDED.photo_url, ''), users.photo_url),
		   updated_at = CURRENT_TIMESTAMP
		 RETURNING `+userColumns,
		email, name, photoURL)
	return scanUser(row)
}

// UpdateProfile applies a partial name/phone/photo update. Empty fields
// keep their current value. Returns pgx.ErrNoRows if the user is absent.
func (r *UserRepository) UpdateProfile(ctx context.Context, email, name, phone, photoURL string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET
		   name = COALESCE(NULLIF($2, ''), name),
		   phone = COALESCE(NULLIF($3, ''), phone),
		   photo_url = COALESCE(NULLIF($4, ''), photo_url),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE email = $1
		 RETURNING `+userColumns,
		email, name, phone, photoURL)
	return scanUser(row)
}

// SetRole persists a role transition. For the teacher role the four
// teacher-only fields are written; for every other role they are set to
// NULL unconditionally. Returns pgx.ErrNoRows if the user is absent.
func (r *UserRepository) SetRole(
	ctx context.Context,
	email string,
	role model.Role,
	shift *model.Shift,
	classTime *string,
	assignedClasses []model.ClassRef,
	subjects []model.SubjectAssignment,
) (*model.User, error) {
	var classesJSON, subjectsJSON []byte
	var err error
	if assignedClasses != nil {
		if classesJSON, err = json.Marshal(assignedClasses); err != nil {
			return nil, fmt.Errorf("marshal assigned classes: %w", err)
		}
	}
	if subjects != nil {
		if subjectsJSON, err = json.Marshal(subjects); err != nil {
			return nil, fmt.Errorf("marshal subjects: %w", err)
		}
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE users SET
		   role = $2,
		   shift = $3,
		   class_time = $4,
		   assigned_classes = $5,
		   subjects = $6,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE email = $1
		 RETURNING `+userColumns,
		email, role, shift, classTime, classesJSON, subjectsJSON)
	return scanUser(row)
}

// ClearAssignments resets the user to the plain "user" role and clears the
// enrollment class plus every teacher-only field in a single update.
func (r *UserRepository) ClearAssignments(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET
		   role = 'user',
		   enrolled_class_name = NULL,
		   stream = NULL,
		   shift = NULL,
		   class_time = NULL,
		   assigned_classes = NULL,
		   subjects = NULL,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE email = $1
		 RETURNING `+userColumns,
		email)
	return scanUser(row)
}

// Delete removes a user by email. Returns the number of rows deleted.
func (r *UserRepository) Delete(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// scanUser reads one user row, unmarshalling the jsonb teacher fields.
func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var classesJSON, subjectsJSON []byte
	var phone, photoURL *string

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &phone, &photoURL, &u.Role,
		&u.EnrolledClassName, &u.Stream, &u.Shift, &u.ClassTime,
		&classesJSON, &subjectsJSON, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone != nil {
		u.Phone = *phone
	}
	if photoURL != nil {
		u.PhotoURL = *photoURL
	}
	if len(classesJSON) > 0 {
		if err := json.Unmarshal(classesJSON, &u.AssignedClasses); err != nil {
			return nil, fmt.Errorf("unmarshal assigned classes: %w", err)
		}
	}
	if len(subjectsJSON) > 0 {
		if err := json.Unmarshal(subjectsJSON, &u.Subjects); err != nil {
			return nil, fmt.Errorf("unmarshal subjects: %w", err)
		}
	}
	return u, nil
}
