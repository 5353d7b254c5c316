package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/domain/entities"
)

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLogInRequest struct {
	GoogleToken string `json:"googleToken"`
}

type facebookLogInRequest struct {
	FBToken   string `json:"fbToken"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	User  entities.PublicUser `json:"user"`
	Token string              `json:"token"`
}

func (h *Handler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.Email == "" || req.Password == "" {
		return writeError(c, apperrors.NewValidation("email and password are required"))
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse{User: user.Sanitize(), Token: token})
}

func (h *Handler) LogIn(c echo.Context) error {
	var req logInRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.Email == "" || req.Password == "" {
		return writeError(c, apperrors.NewValidation("email and password are required"))
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{User: user.Sanitize(), Token: token})
}

func (h *Handler) LogInWithGoogle(c echo.Context) error {
	var req googleLogInRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.GoogleToken == "" {
		return writeError(c, apperrors.NewValidation("googleToken is required"))
	}

	user, token, err := h.auth.LoginWithGoogle(c.Request().Context(), req.GoogleToken)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{User: user.Sanitize(), Token: token})
}

func (h *Handler) LogInWithFacebook(c echo.Context) error {
	var req facebookLogInRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.FBToken == "" || req.Email == "" {
		return writeError(c, apperrors.NewValidation("fbToken and email are required"))
	}

	user, token, err := h.auth.LoginWithFacebook(c.Request().Context(), req.FBToken, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{User: user.Sanitize(), Token: token})
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.Email == "" {
		return writeError(c, apperrors.NewValidation("email is required"))
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset email successfully sent!"})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return writeError(c, apperrors.NewValidation("token is required"))
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}
	if req.Password == "" {
		return writeError(c, apperrors.NewValidation("password is required"))
	}

	if err := h.auth.ResetPassword(c.Request().Context(), token, req.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully!"})
}

func (h *Handler) LogOut(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), currentUserID(c), currentToken(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully!"})
}

func (h *Handler) LogOutAll(c echo.Context) error {
	if err := h.auth.LogoutAll(c.Request().Context(), currentUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out all devices successfully!"})
}
