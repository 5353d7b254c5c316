// Package handler exposes the HTTP surface. It binds requests, calls the
// application services and maps the closed error-kind set to status codes;
// no other layer knows about transport codes.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/application/services"
)

type Handler struct {
	auth         *services.AuthService
	users        *services.UserService
	categories   *services.CategoryService
	transactions *services.TransactionService
	health       func() error
}

func New(
	auth *services.AuthService,
	users *services.UserService,
	categories *services.CategoryService,
	transactions *services.TransactionService,
	health func() error,
) *Handler {
	return &Handler{
		auth:         auth,
		users:        users,
		categories:   categories,
		transactions: transactions,
		health:       health,
	}
}

func writeError(c echo.Context, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrWeakPassword),
		errors.Is(err, apperrors.ErrInvalidField),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrProviderAssertion):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenSignature),
		errors.Is(err, apperrors.ErrTokenMalformed):
		return errorJSON(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrResetTokenInvalid):
		return errorJSON(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.health(); err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "unhealthy")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
