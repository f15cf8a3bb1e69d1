package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// admissionFixture is an in-memory admission store serving both the
// pending and enrolled sides of the workflow.
type admissionFixture struct {
	pendings map[string]*model.PendingStudent
	students map[string]*model.Student
	users    map[string]model.Role
}

func newAdmissionFixture() *admissionFixture {
	return &admissionFixture{
		pendings: make(map[string]*model.PendingStudent),
		students: make(map[string]*model.Student),
		users:    make(map[string]model.Role),
	}
}

func (f *admissionFixture) Create(_ context.Context, p *model.PendingStudent) error {
	if _, ok := f.pendings[p.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	p.ID = len(f.pendings) + 1
	f.pendings[p.Email] = p
	return nil
}

func (f *admissionFixture) GetByEmail(_ context.Context, email string) (*model.PendingStudent, error) {
	p, ok := f.pendings[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *admissionFixture) List(_ context.Context) ([]model.PendingStudent, error) {
	out := make([]model.PendingStudent, 0, len(f.pendings))
	for _, p := range f.pendings {
		out = append(out, *p)
	}
	return out, nil
}

func (f *admissionFixture) Approve(_ context.Context, email string) (*model.Student, error) {
	p, ok := f.pendings[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(f.pendings, email)
	s := &model.Student{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		ClassName:          p.ClassName,
		Stream:             p.Stream,
		RegistrationNumber: p.RegistrationNumber,
	}
	f.students[email] = s
	f.users[email] = model.RoleStudent
	return s, nil
}

func (f *admissionFixture) DeleteByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := f.pendings[email]; !ok {
		return 0, nil
	}
	delete(f.pendings, email)
	return 1, nil
}

// enrolledSide narrows the fixture to the student lookup interface.
type enrolledSide struct{ f *admissionFixture }

func (e enrolledSide) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	s, ok := e.f.students[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func admissionRouter(f *admissionFixture) *gin.Engine {
	svc := service.NewAdmissionService(f, enrolledSide{f}, rand.New(rand.NewPCG(3, 4)), zerolog.Nop())
	h := NewAdmissionHandler(svc)

	r := gin.New()
	r.POST("/pending-students", h.Submit)
	r.GET("/pending-students", h.List)
	r.GET("/pending-students/:email", h.Get)
	r.POST("/pending-students/:email/approve", h.Approve)
	r.POST("/pending-students/:email/reject", h.Reject)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func admissionPayload() map[string]any {
	return map[string]any{
		"name":        "Amina Khatun",
		"email":       "amina@example.com",
		"dob":         "2015-04-12",
		"gender":      "Female",
		"class_name":  "Class 5",
		"parent_name": "Rahim Khatun",
		"phone":       "01712345678",
		"address":     "12 Lake Road, Dhaka",
	}
}

func TestAdmissionLifecycle(t *testing.T) {
	f := newAdmissionFixture()
	r := admissionRouter(f)

	// Submit the public form.
	rec := postJSON(t, r, "/pending-students", admissionPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var submitResp struct {
		Data model.AdmissionReceipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))
	assert.NotZero(t, submitResp.Data.InsertedID)
	assert.GreaterOrEqual(t, submitResp.Data.RegistrationNumber, 100000)

	// Approve it.
	rec = postJSON(t, r, "/pending-students/amina@example.com/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	student, ok := f.students["amina@example.com"]
	require.True(t, ok, "an enrolled student must exist after approval")
	assert.Equal(t, "Class 5", student.ClassName)
	assert.Equal(t, model.RoleStudent, f.users["amina@example.com"])
	assert.Empty(t, f.pendings, "the pending record must be consumed")

	// A second approval finds nothing.
	rec = postJSON(t, r, "/pending-students/amina@example.com/approve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmissionSubmitDuplicate(t *testing.T) {
	r := admissionRouter(newAdmissionFixture())

	rec := postJSON(t, r, "/pending-students", admissionPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, r, "/pending-students", admissionPayload())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdmissionSubmitFieldError(t *testing.T) {
	r := admissionRouter(newAdmissionFixture())

	payload := admissionPayload()
	payload["class_name"] = "Class 10" // senior grade, no stream

	rec := postJSON(t, r, "/pending-students", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Fields, "stream")
}

func TestAdmissionSubmitBindingError(t *testing.T) {
	r := admissionRouter(newAdmissionFixture())

	payload := admissionPayload()
	payload["phone"] = "017" // fails the len=11 binding tag

	rec := postJSON(t, r, "/pending-students", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestAdmissionRejectLifecycle(t *testing.T) {
	f := newAdmissionFixture()
	r := admissionRouter(f)

	rec := postJSON(t, r, "/pending-students", admissionPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, r, "/pending-students/amina@example.com/reject", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.pendings)
	assert.Empty(t, f.students, "rejection must not enroll")

	rec = postJSON(t, r, "/pending-students/amina@example.com/reject", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
