package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/repository"
)

// SubjectService handles subject CRUD.
type SubjectService struct {
	subjects *repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjects *repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjects: subjects}
}

func (s *SubjectService) Get(ctx context.Context, id int) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no subject with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List(ctx context.Context, classID int) ([]model.Subject, error) {
	return s.subjects.List(ctx, classID)
}

func (s *SubjectService) Create(ctx context.Context, subject *model.Subject) error {
	return s.subjects.Create(ctx, subject)
}

func (s *SubjectService) Update(ctx context.Context, subject *model.Subject) error {
	if err := s.subjects.Update(ctx, subject); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no subject with id %d", ErrNotFound, subject.ID)
		}
		return err
	}
	return nil
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	deleted, err := s.subjects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no subject with id %d", ErrNotFound, id)
	}
	return nil
}

// TeacherService handles the public staff directory.
type TeacherService struct {
	teachers *repository.TeacherRepository
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teachers *repository.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

func (s *TeacherService) Get(ctx context.Context, id int) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no teacher with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) List(ctx context.Context) ([]model.Teacher, error) {
	return s.teachers.List(ctx)
}

func (s *TeacherService) Create(ctx context.Context, teacher *model.Teacher) error {
	return s.teachers.Create(ctx, teacher)
}

func (s *TeacherService) Update(ctx context.Context, teacher *model.Teacher) error {
	if err := s.teachers.Update(ctx, teacher); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no teacher with id %d", ErrNotFound, teacher.ID)
		}
		return err
	}
	return nil
}

func (s *TeacherService) Delete(ctx context.Context, id int) error {
	deleted, err := s.teachers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no teacher with id %d", ErrNotFound, id)
	}
	return nil
}

// NoticeService handles notice CRUD.
type NoticeService struct {
	notices *repository.NoticeRepository
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(notices *repository.NoticeRepository) *NoticeService {
	return &NoticeService{notices: notices}
}

func (s *NoticeService) Get(ctx context.Context, id int) (*model.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no notice with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) List(ctx context.Context) ([]model.Notice, error) {
	return s.notices.List(ctx)
}

func (s *NoticeService) Create(ctx context.Context, notice *model.Notice) error {
	return s.notices.Create(ctx, notice)
}

func (s *NoticeService) Update(ctx context.Context, notice *model.Notice) error {
	if err := s.notices.Update(ctx, notice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no notice with id %d", ErrNotFound, notice.ID)
		}
		return err
	}
	return nil
}

func (s *NoticeService) Delete(ctx context.Context, id int) error {
	deleted, err := s.notices.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no notice with id %d", ErrNotFound, id)
	}
	return nil
}

// StoryService handles story CRUD.
type StoryService struct {
	stories *repository.StoryRepository
}

// NewStoryService creates a new StoryService.
func NewStoryService(stories *repository.StoryRepository) *StoryService {
	return &StoryService{stories: stories}
}

func (s *StoryService) Get(ctx context.Context, id int) (*model.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no story with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return story, nil
}

func (s *StoryService) List(ctx context.Context) ([]model.Story, error) {
	return s.stories.List(ctx)
}

func (s *StoryService) Create(ctx context.Context, story *model.Story) error {
	return s.stories.Create(ctx, story)
}

func (s *StoryService) Update(ctx context.Context, story *model.Story) error {
	if err := s.stories.Update(ctx, story); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no story with id %d", ErrNotFound, story.ID)
		}
		return err
	}
	return nil
}

func (s *StoryService) Delete(ctx context.Context, id int) error {
	deleted, err := s.stories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no story with id %d", ErrNotFound, id)
	}
	return nil
}

// RollUpdateService handles roll-change records.
type RollUpdateService struct {
	rolls *repository.RollUpdateRepository
}

// NewRollUpdateService creates a new RollUpdateService.
func NewRollUpdateService(rolls *repository.RollUpdateRepository) *RollUpdateService {
	return &RollUpdateService{rolls: rolls}
}

func (s *RollUpdateService) List(ctx context.Context, studentEmail string) ([]model.RollUpdate, error) {
	return s.rolls.List(ctx, studentEmail)
}

func (s *RollUpdateService) Create(ctx context.Context, u *model.RollUpdate) error {
	return s.rolls.Create(ctx, u)
}

func (s *RollUpdateService) Delete(ctx context.Context, id int) error {
	deleted, err := s.rolls.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: no roll update with id %d", ErrNotFound, id)
	}
	return nil
}
