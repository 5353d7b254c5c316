package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/application/services"
	"github.com/expensave/expensave-backend/internal/infrastructure"
)

const (
	contextUserID = "userID"
	contextToken  = "sessionToken"
)

// Authenticate is the gate in front of every protected route: extract the
// bearer token, verify its signature and expiry, then require it to be an
// active session. Protected handlers read the resolved user id from context
// and never re-derive identity.
func Authenticate(tokens *infrastructure.JWTService, sessions *services.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return writeError(c, apperrors.ErrUnauthenticated)
			}

			claims, err := tokens.VerifySessionToken(token)
			if err != nil {
				return writeError(c, err)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return writeError(c, apperrors.ErrUnauthenticated)
			}

			active, err := sessions.IsActive(c.Request().Context(), userID, token)
			if err != nil {
				return writeError(c, err)
			}
			if !active {
				return writeError(c, apperrors.ErrUnauthenticated)
			}

			c.Set(contextUserID, userID)
			c.Set(contextToken, token)
			return next(c)
		}
	}
}

// RateLimit throttles by client IP; applied to the auth endpoints only.
func RateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return errorJSON(c, http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}

func currentUserID(c echo.Context) uuid.UUID {
	id, _ := c.Get(contextUserID).(uuid.UUID)
	return id
}

func currentToken(c echo.Context) string {
	token, _ := c.Get(contextToken).(string)
	return token
}
