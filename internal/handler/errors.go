package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/casafin/casafin-backend/internal/domain"
)

// respondError maps domain errors onto problem-details responses
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		return NewConfirmationRequiredError(c, "The write targets a closed month; re-send with confirmed=true to proceed")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrOwnerNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrBillNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDueDay),
		errors.Is(err, domain.ErrInvalidAccountType):
		return NewValidationError(c, err.Error(), nil)
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
		return NewInternalError(c, "An unexpected error occurred")
	}
}
