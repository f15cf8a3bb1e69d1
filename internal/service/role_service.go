package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
)

// RoleStore is the identity storage the role-assignment workflow writes.
type RoleStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetRole(ctx context.Context, email string, role model.Role, shift *model.Shift, classTime *string,
		assignedClasses []model.ClassRef, subjects []model.SubjectAssignment) (*model.User, error)
	ClearAssignments(ctx context.Context, email string) (*model.User, error)
}

// ClassResolver resolves class IDs against the catalog.
type ClassResolver interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
}

// RoleService manages promotion and demotion of users between the four
// roles, including teacher class/subject/shift assignment validation. It
// is the only writer allowed to set teacher-specific fields.
type RoleService struct {
	users   RoleStore
	classes ClassResolver
	log     zerolog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(users RoleStore, classes ClassResolver, log zerolog.Logger) *RoleService {
	return &RoleService{users: users, classes: classes, log: log}
}

// AssignRole transitions the target user to the requested role. Teacher
// promotions carry shift, subject, and class assignments which are fully
// validated before any write; every other role strips teacher state
// unconditionally. Returns ErrNotFound if the target user is absent or a
// referenced class does not exist.
func (s *RoleService) AssignRole(ctx context.Context, targetEmail string, req *model.AssignRoleRequest) (*model.User, error) {
	if !model.ValidRole(req.Role) {
		return nil, invalid("role", "must be one of user, student, teacher, admin")
	}

	if _, err := s.users.GetByEmail(ctx, targetEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user with email %s", ErrNotFound, targetEmail)
		}
		return nil, fmt.Errorf("load target user: %w", err)
	}

	if req.Role != model.RoleTeacher {
		// Demotion contract: any transition away from teacher clears
		// the four teacher-only fields, whatever the previous role was.
		user, err := s.users.SetRole(ctx, targetEmail, req.Role, nil, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("set role: %w", err)
		}
		s.log.Info().Str("email", targetEmail).Str("role", string(req.Role)).Msg("Role assigned")
		return user, nil
	}

	if err := s.validateTeacherPayload(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.users.SetRole(ctx, targetEmail, model.RoleTeacher, req.Shift, req.ClassTime, req.AssignedClasses, req.Subjects)
	if err != nil {
		return nil, fmt.Errorf("set teacher role: %w", err)
	}

	s.log.Info().
		Str("email", targetEmail).
		Int("assigned_classes", len(req.AssignedClasses)).
		Msg("Teacher role assigned")

	return user, nil
}

// RemoveClassAssignment resets the target to the plain "user" role and
// clears enrollment and teacher state in one update.
func (s *RoleService) RemoveClassAssignment(ctx context.Context, targetEmail string) (*model.User, error) {
	user, err := s.users.ClearAssignments(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user with email %s", ErrNotFound, targetEmail)
		}
		return nil, fmt.Errorf("clear assignments: %w", err)
	}

	s.log.Info().Str("email", targetEmail).Msg("Class assignment removed")
	return user, nil
}

// validateTeacherPayload checks shift, subjects, and assigned classes,
// failing fast. Every referenced class ID must resolve against the
// catalog; the first unknown one is reported by ID.
func (s *RoleService) validateTeacherPayload(ctx context.Context, req *model.AssignRoleRequest) error {
	if req.Shift == nil || (*req.Shift != model.ShiftMorning && *req.Shift != model.ShiftAfternoon) {
		return invalid("shift", "must be Morning or Afternoon")
	}
	if len(req.Subjects) == 0 {
		return invalid("subjects", "must contain at least one entry")
	}
	for i, sub := range req.Subjects {
		field := fmt.Sprintf("subjects[%d]", i)
		if sub.ClassID == 0 {
			return invalid(field+".class_id", "is required")
		}
		if sub.ClassName == "" {
			return invalid(field+".class_name", "is required")
		}
		if len(sub.Subjects) == 0 {
			return invalid(field+".subjects", "must contain at least one subject name")
		}
		for _, name := range sub.Subjects {
			if name == "" {
				return invalid(field+".subjects", "must not contain empty subject names")
			}
		}
		if sub.RoomNo == "" {
			return invalid(field+".room_no", "is required")
		}
		if sub.ClassTime == "" {
			return invalid(field+".class_time", "is required")
		}
	}
	if len(req.AssignedClasses) == 0 {
		return invalid("assigned_classes", "must contain at least one entry")
	}
	for i, ref := range req.AssignedClasses {
		field := fmt.Sprintf("assigned_classes[%d]", i)
		if ref.ClassID == 0 {
			return invalid(field+".class_id", "is required")
		}
		if ref.ClassName == "" {
			return invalid(field+".class_name", "is required")
		}
		if _, err := s.classes.GetByID(ctx, ref.ClassID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: class %d does not exist", ErrNotFound, ref.ClassID)
			}
			return fmt.Errorf("resolve class %d: %w", ref.ClassID, err)
		}
	}
	return nil
}
