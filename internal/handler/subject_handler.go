package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// SubjectHandler handles subject management.
type SubjectHandler struct {
	subjectService *service.SubjectService
}

// NewSubjectHandler creates a new SubjectHandler.
func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// ListSubjects godoc
// GET /api/v1/subjects?class_id=...
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	classID, _ := strconv.Atoi(c.Query("class_id"))
	subjects, err := h.subjectService.List(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// GetSubject godoc
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	subject, err := h.subjectService.Get(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": subject})
}

// CreateSubject godoc
// POST /api/v1/subjects — admin only.
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req model.SubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{
		ClassID:     req.ClassID,
		Name:        req.Name,
		Code:        req.Code,
		TeacherName: req.TeacherName,
	}
	if err := h.subjectService.Create(c.Request.Context(), subject); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Unknown class_id
			response.Fail(c, http.StatusNotFound, response.ErrUnknownClass)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// UpdateSubject godoc
// PUT /api/v1/subjects/:id — admin only.
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject := &model.Subject{
		ID:          id,
		ClassID:     req.ClassID,
		Name:        req.Name,
		Code:        req.Code,
		TeacherName: req.TeacherName,
	}
	if err := h.subjectService.Update(c.Request.Context(), subject); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusNotFound, response.ErrUnknownClass)
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": subject})
}

// DeleteSubject godoc
// DELETE /api/v1/subjects/:id — admin only.
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
