package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondUnauthorized responds with an authentication error
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, errors.NewUnauthorizedError(message))
}

// respondError responds with the status matching err; unrecognised errors are internal
func respondError(c *gin.Context, err error, message string) {
	apiErr := errors.FromDomain(err, message)
	status := apiErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(apiErr.Code)),
		)
	}
	c.JSON(status, apiErr)
}
