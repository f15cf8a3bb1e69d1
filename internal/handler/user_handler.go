package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/middleware"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// UserHandler handles identity-record management.
type UserHandler struct {
	userService *service.UserService
	roleService *service.RoleService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, roleService *service.RoleService) *UserHandler {
	return &UserHandler{userService: userService, roleService: roleService}
}

// updateUserRequest carries profile fields plus an optional role change.
// The role branch is admin-gated inside the handler because the route is
// shared with the self-service profile update.
type updateUserRequest struct {
	model.UpdateProfileRequest
	Role            model.Role                `json:"role" binding:"omitempty"`
	Shift           *model.Shift              `json:"shift,omitempty"`
	ClassTime       *string                   `json:"class_time,omitempty"`
	AssignedClasses []model.ClassRef          `json:"assigned_classes,omitempty"`
	Subjects        []model.SubjectAssignment `json:"subjects,omitempty"`
}

// ListUsers godoc
// GET /api/v1/users
// Lists all users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser godoc
// GET /api/v1/users/:email
// Retrieves one user. Self or admin.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser godoc
// PATCH /api/v1/users/:email
// Self-or-admin profile update. A role field on the payload switches to
// the role-assignment workflow, which only admins may invoke.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	email := c.Param("email")

	if req.Role != "" {
		acting := middleware.ActingUser(c)
		if acting == nil || acting.Role != model.RoleAdmin {
			response.Fail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		user, err := h.roleService.AssignRole(c.Request.Context(), email, &model.AssignRoleRequest{
			Role:            req.Role,
			Shift:           req.Shift,
			ClassTime:       req.ClassTime,
			AssignedClasses: req.AssignedClasses,
			Subjects:        req.Subjects,
		})
		if err != nil {
			failFromErr(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"user": user})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), email, &req.UpdateProfileRequest)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// RemoveClassAssignment godoc
// PATCH /api/v1/users/:email/remove-class
// Resets the user to the plain role and clears enrollment plus teacher
// state. Admin only.
func (h *UserHandler) RemoveClassAssignment(c *gin.Context) {
	user, err := h.roleService.RemoveClassAssignment(c.Request.Context(), c.Param("email"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// DELETE /api/v1/users/:email
// Removes the user locally and best-effort at the identity provider.
// Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted_count": 1})
}
