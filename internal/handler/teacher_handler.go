package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// TeacherHandler handles the public staff directory.
type TeacherHandler struct {
	teacherService *service.TeacherService
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(teacherService *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// ListTeachers godoc
// GET /api/v1/teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher godoc
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	teacher, err := h.teacherService.Get(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// CreateTeacher godoc
// POST /api/v1/teachers — admin only.
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req model.TeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher := &model.Teacher{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Subject:  req.Subject,
	}
	if err := h.teacherService.Create(c.Request.Context(), teacher); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/teachers/:id — admin only.
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.TeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	teacher := &model.Teacher{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Subject:  req.Subject,
	}
	if err := h.teacherService.Update(c.Request.Context(), teacher); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// DeleteTeacher godoc
// DELETE /api/v1/teachers/:id — admin only.
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.teacherService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
