package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
)

// AuthHandler handles the login exchange.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Exchanges an identity-provider ID token for the stored user record and
// a session token. First login creates the user with the plain role.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}
