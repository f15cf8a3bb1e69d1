package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// PendingStore is the admission-record storage the workflow runs against.
type PendingStore interface {
	Create(ctx context.Context, p *model.PendingStudent) error
	GetByEmail(ctx context.Context, email string) (*model.PendingStudent, error)
	List(ctx context.Context) ([]model.PendingStudent, error)
	Approve(ctx context.Context, email string) (*model.Student, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// EnrolledStore is the slice of student storage the workflow needs to
// refuse re-admission of an already enrolled email.
type EnrolledStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
}

// AdmissionService manages the pending -> approved/rejected lifecycle of
// prospective students.
type AdmissionService struct {
	pendings PendingStore
	students EnrolledStore
	rng      *rand.Rand
	log      zerolog.Logger
}

// NewAdmissionService creates a new AdmissionService. rng may be nil, in
// which case a time-seeded source is used; tests inject a seeded one.
func NewAdmissionService(pendings PendingStore, students EnrolledStore, rng *rand.Rand, log zerolog.Logger) *AdmissionService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix())))
	}
	return &AdmissionService{pendings: pendings, students: students, rng: rng, log: log}
}

// Submit validates an admission form and stores a pending record with a
// freshly generated registration number. Validation fails fast on the
// first violated field.
func (s *AdmissionService) Submit(ctx context.Context, req *model.AdmissionRequest) (*model.PendingStudent, error) {
	dob, err := validateAdmission(req)
	if err != nil {
		return nil, err
	}

	if existing, err := s.students.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %s already enrolled", ErrConflict, req.Email)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	p := &model.PendingStudent{
		Email:              req.Email,
		Name:               req.Name,
		DOB:                dob,
		Gender:             req.Gender,
		ClassName:          req.ClassName,
		ParentName:         req.ParentName,
		Phone:              req.Phone,
		Address:            req.Address,
		RegistrationNumber: s.newRegistrationNumber(),
	}
	if req.Stream != "" {
		stream := req.Stream
		p.Stream = &stream
	}

	if err := s.pendings.Create(ctx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: admission for %s already submitted", ErrConflict, req.Email)
		}
		return nil, fmt.Errorf("create pending student: %w", err)
	}

	s.log.Info().
		Str("email", p.Email).
		Str("class", p.ClassName).
		Int("registration_number", p.RegistrationNumber).
		Msg("Admission submitted")

	return p, nil
}

// Approve promotes a pending admission into an enrolled student and
// escalates the matching user to the student role. The whole transition
// is one conditional transaction; a pending record consumed by a
// concurrent approval surfaces as ErrNotFound with no writes performed.
func (s *AdmissionService) Approve(ctx context.Context, email string) (*model.Student, error) {
	student, err := s.pendings.Approve(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no pending admission for %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("approve admission: %w", err)
	}

	s.log.Info().
		Str("email", student.Email).
		Str("class", student.ClassName).
		Msg("Admission approved")

	return student, nil
}

// Reject deletes a pending admission. Rejection of an absent record
// fails with ErrNotFound.
func (s *AdmissionService) Reject(ctx context.Context, email string) error {
	deleted, err := s.pendings.DeleteByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("reject admission: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no pending admission for %s", ErrNotFound, email)
	}

	s.log.Info().Str("email", email).Msg("Admission rejected")
	return nil
}

// Get retrieves one pending admission.
func (s *AdmissionService) Get(ctx context.Context, email string) (*model.PendingStudent, error) {
	p, err := s.pendings.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no pending admission for %s", ErrNotFound, email)
		}
		return nil, err
	}
	return p, nil
}

// List retrieves all pending admissions.
func (s *AdmissionService) List(ctx context.Context) ([]model.PendingStudent, error) {
	return s.pendings.List(ctx)
}

// newRegistrationNumber draws a 6-digit number uniformly from
// [100000, 999999]. Collisions are possible and accepted: the number is
// a human-facing reference, not a key.
func (s *AdmissionService) newRegistrationNumber() int {
	return 100000 + s.rng.IntN(900000)
}

// validateAdmission checks the admission form field by field, returning
// the parsed date of birth on success or the first violated field.
func validateAdmission(req *model.AdmissionRequest) (time.Time, error) {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return time.Time{}, invalid("name", "must be at least 2 characters")
	}
	if !strings.Contains(req.Email, "@") {
		return time.Time{}, invalid("email", "must be a valid email address")
	}
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return time.Time{}, invalid("dob", "must be a date in YYYY-MM-DD format")
	}
	switch req.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return time.Time{}, invalid("gender", "must be one of Male, Female, Other")
	}
	if !model.KnownClass(req.ClassName) {
		return time.Time{}, invalid("class_name", "is not part of the class catalog")
	}
	if model.RequiresStream(req.ClassName) {
		if req.Stream == "" {
			return time.Time{}, invalid("stream", "is required for "+req.ClassName)
		}
		if !model.ValidStream(req.Stream) {
			return time.Time{}, invalid("stream", "must be one of Science, Commerce, Arts")
		}
	} else if req.Stream != "" {
		return time.Time{}, invalid("stream", "is only allowed for Class 9 and above")
	}
	if len(strings.TrimSpace(req.ParentName)) < 2 {
		return time.Time{}, invalid("parent_name", "must be at least 2 characters")
	}
	if !isDigits(req.Phone) || len(req.Phone) != 11 {
		return time.Time{}, invalid("phone", "must be exactly 11 digits")
	}
	if len(strings.TrimSpace(req.Address)) < 5 {
		return time.Time{}, invalid("address", "must be at least 5 characters")
	}
	return dob, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
