package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/repository"
)

// StudentService handles enrolled-student reads and the student-facing
// profile update. Enrollment class never changes through this service;
// only the admission workflow sets it.
type StudentService struct {
	students *repository.StudentRepository
	log      zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(students *repository.StudentRepository, log zerolog.Logger) *StudentService {
	return &StudentService{students: students, log: log}
}

// Get retrieves a student by email.
func (s *StudentService) Get(ctx context.Context, email string) (*model.Student, error) {
	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no student with email %s", ErrNotFound, email)
		}
		return nil, err
	}
	return student, nil
}

// List retrieves students, optionally filtered by class name.
func (s *StudentService) List(ctx context.Context, className string) ([]model.Student, error) {
	return s.students.List(ctx, className)
}

// Update applies the student-facing partial update.
func (s *StudentService) Update(ctx context.Context, email string, req *model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.students.UpdateProfile(ctx, email, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no student with email %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, email string) error {
	deleted, err := s.students.Delete(ctx, email)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no student with email %s", ErrNotFound, email)
	}
	s.log.Info().Str("email", email).Msg("Student deleted")
	return nil
}
