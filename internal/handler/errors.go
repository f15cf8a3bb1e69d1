package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
)

// failFromErr maps a workflow error onto the HTTP error taxonomy. Every
// unrecognized error is an internal failure: store errors are surfaced
// as 500, never silently swallowed.
func failFromErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{ve.Field: ve.Message})
	case errors.Is(err, service.ErrUnauthenticated):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
