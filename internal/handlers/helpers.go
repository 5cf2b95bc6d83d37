// internal/handlers/helpers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tokosini/storefront/internal/services"
	"github.com/tokosini/storefront/internal/utils"
)

// currentUserID resolves the authenticated user from the request context.
// Auth middleware guarantees the value exists on protected routes; a miss
// here means a route was wired without it.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return id, true
}

// parseIDParam reads a uuid path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError translates the service error taxonomy into HTTP
// responses. Unknown errors are logged and answered as 500 without leaking
// internals.
func respondServiceError(c *gin.Context, err error, resource string) {
	var stockErr *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.As(err, &stockErr):
		utils.ConflictResponse(c, stockErr.Error())
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, "Cart is empty", nil)
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrOrderFailed):
		// Rolled back cleanly; safe for the client to retry.
		utils.InternalErrorResponse(c, "Order could not be processed. Please try again.")
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}
