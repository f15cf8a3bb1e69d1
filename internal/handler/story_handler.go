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

// StoryHandler handles school-life stories.
type StoryHandler struct {
	storyService *service.StoryService
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// ListStories godoc
// GET /api/v1/stories
func (h *StoryHandler) ListStories(c *gin.Context) {
	stories, err := h.storyService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stories": stories})
}

// GetStory godoc
// GET /api/v1/stories/:id
func (h *StoryHandler) GetStory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	story, err := h.storyService.Get(c.Request.Context(), id)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"story": story})
}

// CreateStory godoc
// POST /api/v1/stories — admin only.
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req model.StoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	story := &model.Story{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		AuthorName: req.AuthorName,
	}
	if err := h.storyService.Create(c.Request.Context(), story); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"story": story})
}

// UpdateStory godoc
// PUT /api/v1/stories/:id — admin only.
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.StoryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	story := &model.Story{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		AuthorName: req.AuthorName,
	}
	if err := h.storyService.Update(c.Request.Context(), story); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"story": story})
}

// DeleteStory godoc
// DELETE /api/v1/stories/:id — admin only.
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := h.storyService.Delete(c.Request.Context(), id); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
