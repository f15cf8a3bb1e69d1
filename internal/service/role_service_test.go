package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleStore struct {
	users map[string]*model.User
}

func newFakeRoleStore(users ...*model.User) *fakeRoleStore {
	f := &fakeRoleStore{users: make(map[string]*model.User)}
	for _, u := range users {
		f.users[u.Email] = u
	}
	return f
}

func (f *fakeRoleStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeRoleStore) SetRole(_ context.Context, email string, role model.Role, shift *model.Shift,
	classTime *string, assignedClasses []model.ClassRef, subjects []model.SubjectAssignment) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.Role = role
	u.Shift = shift
	u.ClassTime = classTime
	u.AssignedClasses = assignedClasses
	u.Subjects = subjects
	return u, nil
}

func (f *fakeRoleStore) ClearAssignments(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.Role = model.RoleUser
	u.EnrolledClassName = nil
	u.Stream = nil
	u.Shift = nil
	u.ClassTime = nil
	u.AssignedClasses = nil
	u.Subjects = nil
	return u, nil
}

// fakeClassResolver resolves only the IDs it was given.
type fakeClassResolver struct {
	classes map[int]*model.Class
}

func newFakeClassResolver(ids ...int) *fakeClassResolver {
	f := &fakeClassResolver{classes: make(map[int]*model.Class)}
	for _, id := range ids {
		f.classes[id] = &model.Class{ID: id, Name: model.ClassCatalog[(id-1)%len(model.ClassCatalog)]}
	}
	return f
}

func (f *fakeClassResolver) GetByID(_ context.Context, id int) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func teacherRequest() *model.AssignRoleRequest {
	shift := model.ShiftMorning
	classTime := "08:00-12:00"
	return &model.AssignRoleRequest{
		Role:      model.RoleTeacher,
		Shift:     &shift,
		ClassTime: &classTime,
		AssignedClasses: []model.ClassRef{
			{ClassID: 9, ClassName: "Class 5"},
		},
		Subjects: []model.SubjectAssignment{
			{ClassID: 9, ClassName: "Class 5", Subjects: []string{"Mathematics", "Science"}, RoomNo: "204", ClassTime: "08:00"},
		},
	}
}

func TestAssignRoleUnknownRole(t *testing.T) {
	store := newFakeRoleStore(&model.User{Email: "x@example.com", Role: model.RoleUser})
	svc := NewRoleService(store, newFakeClassResolver(), zerolog.Nop())

	_, err := svc.AssignRole(context.Background(), "x@example.com", &model.AssignRoleRequest{Role: "principal"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)
	assert.Equal(t, model.RoleUser, store.users["x@example.com"].Role)
}

func TestAssignRoleMissingUser(t *testing.T) {
	svc := NewRoleService(newFakeRoleStore(), newFakeClassResolver(), zerolog.Nop())

	_, err := svc.AssignRole(context.Background(), "ghost@example.com", &model.AssignRoleRequest{Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRolePromotesTeacher(t *testing.T) {
	store := newFakeRoleStore(&model.User{Email: "t@example.com", Role: model.RoleUser})
	svc := NewRoleService(store, newFakeClassResolver(9), zerolog.Nop())

	user, err := svc.AssignRole(context.Background(), "t@example.com", teacherRequest())
	require.NoError(t, err)

	assert.Equal(t, model.RoleTeacher, user.Role)
	require.NotNil(t, user.Shift)
	assert.Equal(t, model.ShiftMorning, *user.Shift)
	assert.Len(t, user.AssignedClasses, 1)
	assert.Len(t, user.Subjects, 1)
}

func TestAssignRoleTeacherWithUnknownClass(t *testing.T) {
	original := &model.User{Email: "t@example.com", Role: model.RoleUser}
	store := newFakeRoleStore(original)
	svc := NewRoleService(store, newFakeClassResolver(), zerolog.Nop())

	req := teacherRequest()
	req.AssignedClasses = []model.ClassRef{{ClassID: 99, ClassName: "Class 5"}}

	_, err := svc.AssignRole(context.Background(), "t@example.com", req)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "class 99")

	// No partial write: the user keeps its previous role and no teacher
	// fields appear.
	assert.Equal(t, model.RoleUser, original.Role)
	assert.Nil(t, original.Shift)
	assert.Nil(t, original.AssignedClasses)
}

func TestAssignRoleTeacherPayloadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.AssignRoleRequest)
		field  string
	}{
		{"missing shift", func(r *model.AssignRoleRequest) { r.Shift = nil }, "shift"},
		{"bad shift", func(r *model.AssignRoleRequest) { s := model.Shift("Evening"); r.Shift = &s }, "shift"},
		{"no subjects", func(r *model.AssignRoleRequest) { r.Subjects = nil }, "subjects"},
		{"subject without names", func(r *model.AssignRoleRequest) { r.Subjects[0].Subjects = nil }, "subjects[0].subjects"},
		{"empty subject name", func(r *model.AssignRoleRequest) { r.Subjects[0].Subjects = []string{""} }, "subjects[0].subjects"},
		{"missing room", func(r *model.AssignRoleRequest) { r.Subjects[0].RoomNo = "" }, "subjects[0].room_no"},
		{"missing class time", func(r *model.AssignRoleRequest) { r.Subjects[0].ClassTime = "" }, "subjects[0].class_time"},
		{"no assigned classes", func(r *model.AssignRoleRequest) { r.AssignedClasses = nil }, "assigned_classes"},
		{"assignment without id", func(r *model.AssignRoleRequest) { r.AssignedClasses[0].ClassID = 0 }, "assigned_classes[0].class_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeRoleStore(&model.User{Email: "t@example.com", Role: model.RoleUser})
			svc := NewRoleService(store, newFakeClassResolver(9), zerolog.Nop())

			req := teacherRequest()
			tt.mutate(req)

			_, err := svc.AssignRole(context.Background(), "t@example.com", req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, model.RoleUser, store.users["t@example.com"].Role)
		})
	}
}

func TestAssignRoleDemotionClearsTeacherFields(t *testing.T) {
	shift := model.ShiftAfternoon
	classTime := "13:00-17:00"
	teacher := &model.User{
		Email:           "t@example.com",
		Role:            model.RoleTeacher,
		Shift:           &shift,
		ClassTime:       &classTime,
		AssignedClasses: []model.ClassRef{{ClassID: 9, ClassName: "Class 5"}},
		Subjects:        []model.SubjectAssignment{{ClassID: 9, ClassName: "Class 5", Subjects: []string{"English"}, RoomNo: "101", ClassTime: "13:00"}},
	}
	store := newFakeRoleStore(teacher)
	svc := NewRoleService(store, newFakeClassResolver(9), zerolog.Nop())

	user, err := svc.AssignRole(context.Background(), "t@example.com", &model.AssignRoleRequest{Role: model.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.Nil(t, user.Shift)
	assert.Nil(t, user.ClassTime)
	assert.Nil(t, user.AssignedClasses)
	assert.Nil(t, user.Subjects)
}

func TestAssignRoleIgnoresTeacherFieldsForOtherRoles(t *testing.T) {
	store := newFakeRoleStore(&model.User{Email: "a@example.com", Role: model.RoleUser})
	svc := NewRoleService(store, newFakeClassResolver(9), zerolog.Nop())

	// Teacher payload riding on an admin promotion is dropped, not stored.
	req := teacherRequest()
	req.Role = model.RoleAdmin

	user, err := svc.AssignRole(context.Background(), "a@example.com", req)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Nil(t, user.Shift)
	assert.Nil(t, user.AssignedClasses)
	assert.Nil(t, user.Subjects)
}

func TestRemoveClassAssignment(t *testing.T) {
	className := "Class 5"
	stream := model.StreamScience
	student := &model.User{
		Email:             "s@example.com",
		Role:              model.RoleStudent,
		EnrolledClassName: &className,
		Stream:            &stream,
	}
	store := newFakeRoleStore(student)
	svc := NewRoleService(store, newFakeClassResolver(), zerolog.Nop())

	user, err := svc.RemoveClassAssignment(context.Background(), "s@example.com")
	require.NoError(t, err)

	assert.Equal(t, model.RoleUser, user.Role)
	assert.Nil(t, user.EnrolledClassName)
	assert.Nil(t, user.Stream)
}

func TestRemoveClassAssignmentMissingUser(t *testing.T) {
	svc := NewRoleService(newFakeRoleStore(), newFakeClassResolver(), zerolog.Nop())

	_, err := svc.RemoveClassAssignment(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
