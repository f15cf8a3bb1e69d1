package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
)

// ClassHandler serves the fixed grade-level catalog.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists the full catalog in school order. Public.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}
