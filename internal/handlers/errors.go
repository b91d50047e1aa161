package handlers

import (
	"errors"
	"net/http"

	"skillswap/internal/services"
	"skillswap/internal/utils"
	"skillswap/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinel errors onto the response
// envelope. Anything unrecognized is logged and reported as an
// internal error without leaking the cause.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, services.ErrAccessDenied):
		utils.ForbiddenResponse(c, "Access denied")
	case errors.Is(err, services.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, services.ErrTerminalStatus):
		utils.ConflictResponse(c, "Request has already been decided")
	case errors.Is(err, services.ErrAlreadySubmitted):
		utils.ConflictResponse(c, "Test has already been submitted")
	default:
		logger.LogError(err, "Unhandled service error", map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
		utils.InternalErrorResponse(c, "Something went wrong")
	}
}
