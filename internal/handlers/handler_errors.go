package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/core/services"
)

// respondServiceError maps service errors to HTTP statuses. Sentinels from
// the service layer carry the business meaning; everything unrecognized is a
// 500 with a generic message so internals never leak to callers.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrAmbiguousContainer),
		errors.Is(err, services.ErrSameContainer),
		errors.Is(err, services.ErrReservedCategory):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, services.ErrContainerNotFound),
		errors.Is(err, services.ErrDrawerNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrNoOpenSession):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, services.ErrSessionAlreadyOpen),
		errors.Is(err, services.ErrContainerLinked),
		errors.Is(err, services.ErrAccountCodeTaken),
		errors.Is(err, services.ErrDuplicateCategory),
		errors.Is(err, services.ErrContainerInactive),
		errors.Is(err, services.ErrDrawerInactive):
		logger.Warn("Conflicting operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientBalance):
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseContainerRefQuery reads the containerType and containerID query
// parameters. It writes the 400 response itself when they are invalid.
func parseContainerRefQuery(c *gin.Context) (domain.ContainerRef, bool) {
	ref := domain.ContainerRef{
		Type: domain.ContainerType(c.Query("containerType")),
		ID:   c.Query("containerID"),
	}
	if ref.Type != domain.ContainerDrawer && ref.Type != domain.ContainerBank {
		c.JSON(http.StatusBadRequest, gin.H{"error": "containerType must be DRAWER or BANK_ACCOUNT"})
		return domain.ContainerRef{}, false
	}
	if ref.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "containerID is required"})
		return domain.ContainerRef{}, false
	}
	return ref, true
}
