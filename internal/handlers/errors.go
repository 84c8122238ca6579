package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// integrityNotice accompanies partial-write failures so callers know the ledger may hold an orphan header.
const integrityNotice = "The transaction header may have been stored without its entries. Verify the ledger before retrying."

// respondWithError maps service errors onto HTTP responses.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPartialWriteFailed):
		logger.Error("Partial write "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "integrity": integrityNotice})
	case errors.Is(err, apperrors.ErrPersistenceFailed):
		logger.Error("Persistence failure "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("Unexpected error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// actorID returns the authenticated subject, or nil when auth is disabled.
func actorID(c *gin.Context) *string {
	if id, ok := middleware.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
