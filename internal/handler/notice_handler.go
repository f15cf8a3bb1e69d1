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

// NoticeHandler handles school announcements.
type NoticeHandler struct {
	noticeService *service.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler.
func NewNoticeHandler(noticeService *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// ListNotices godoc
// GET /api/v1/notices
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	notices, err := h.noticeService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notices": notices})
}

// GetNotice godoc
// GET /api/v1/notices/:id
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	notice, err := h.noticeService.Get(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notice": notice})
}

// CreateNotice godoc
// POST /api/v1/notices — admin only.
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	var req model.NoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice := &model.Notice{Title: req.Title, Body: req.Body, Author: req.Author}
	if err := h.noticeService.Create(c.Request.Context(), notice); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notice": notice})
}

// UpdateNotice godoc
// PUT /api/v1/notices/:id — admin only.
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.NoticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notice := &model.Notice{ID: id, Title: req.Title, Body: req.Body, Author: req.Author}
	if err := h.noticeService.Update(c.Request.Context(), notice); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notice": notice})
}

// DeleteNotice godoc
// DELETE /api/v1/notices/:id — admin only.
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
