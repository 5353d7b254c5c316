package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/application/services"
	"github.com/expensave/expensave-backend/internal/domain/entities"
)

type userResponse struct {
	User entities.PublicUser `json:"user"`
}

// editableProfileFields is the full capability table for PATCH /users/me.
// A request naming any other field is rejected before anything is applied.
var editableProfileFields = map[string]func(*services.ProfileUpdate, *string){
	"firstName": func(u *services.ProfileUpdate, v *string) { u.FirstName = v },
	"lastName":  func(u *services.ProfileUpdate, v *string) { u.LastName = v },
	"email":     func(u *services.ProfileUpdate, v *string) { u.Email = v },
	"password":  func(u *services.ProfileUpdate, v *string) { u.Password = v },
}

func (h *Handler) GetProfile(c echo.Context) error {
	user, err := h.users.GetProfile(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: user.Sanitize()})
}

func (h *Handler) EditProfile(c echo.Context) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}

	var update services.ProfileUpdate
	for field, value := range raw {
		assign, ok := editableProfileFields[field]
		if !ok {
			return writeError(c, apperrors.ErrInvalidField)
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return writeError(c, apperrors.NewValidation(field+" must be a string"))
		}
		assign(&update, &s)
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), currentUserID(c), update)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: user.Sanitize()})
}

func (h *Handler) DeleteAccount(c echo.Context) error {
	user, err := h.users.DeleteAccount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: user.Sanitize()})
}
