package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/SscSPs/bizbooks_backend/internal/utils/validation"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto a status code. Client errors
// carry the service message; anything else is logged and answered with fallback.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden request", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// respondBindError answers a failed bind with the offending fields when the
// failure came from the validator.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	logger.Warn(msg, slog.String("error", err.Error()))
	if fields := validation.FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg + ": " + err.Error()})
}

// requireOwner reads the authenticated owner or answers 401.
func requireOwner(c *gin.Context, logger *slog.Logger) (string, bool) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return ownerID, true
}
