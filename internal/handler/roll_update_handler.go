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

// RollUpdateHandler handles roll-change records.
type RollUpdateHandler struct {
	rollService *service.RollUpdateService
}

// NewRollUpdateHandler creates a new RollUpdateHandler.
func NewRollUpdateHandler(rollService *service.RollUpdateService) *RollUpdateHandler {
	return &RollUpdateHandler{rollService: rollService}
}

// ListRollUpdates godoc
// GET /api/v1/roll-updates?student_email=...
func (h *RollUpdateHandler) ListRollUpdates(c *gin.Context) {
	updates, err := h.rollService.List(c.Request.Context(), c.Query("student_email"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"roll_updates": updates})
}

// CreateRollUpdate godoc
// POST /api/v1/roll-updates — admin only.
func (h *RollUpdateHandler) CreateRollUpdate(c *gin.Context) {
	var req model.RollUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	update := &model.RollUpdate{
		StudentEmail: req.StudentEmail,
		ClassName:    req.ClassName,
		PreviousRoll: req.PreviousRoll,
		NewRoll:      req.NewRoll,
		Reason:       req.Reason,
	}
	if err := h.rollService.Create(c.Request.Context(), update); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"roll_update": update})
}

// DeleteRollUpdate godoc
// DELETE /api/v1/roll-updates/:id — admin only.
func (h *RollUpdateHandler) DeleteRollUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.rollService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
