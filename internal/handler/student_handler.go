package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// StudentHandler handles enrolled-student reads and updates.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students?class_name=...
// Lists students, optionally filtered by class. Admin or teacher.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context(), c.Query("class_name"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/v1/students/:email
// Retrieves one student. Self or admin.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// UpdateStudent godoc
// PATCH /api/v1/students/:email
// Student-facing profile update. The enrollment class is not part of the
// payload and cannot be changed here. Self or admin.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), c.Param("email"), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:email
// Removes a student record. Admin only.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
