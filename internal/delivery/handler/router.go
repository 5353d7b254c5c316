package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the route table. authn gates the protected routes;
// throttle sits in front of the credential-bearing auth endpoints.
func RegisterRoutes(e *echo.Echo, h *Handler, authn, throttle echo.MiddlewareFunc) {
	auth := e.Group("/auth", throttle)
	auth.POST("/signup", h.SignUp)
	auth.POST("/login", h.LogIn)
	auth.POST("/login/google", h.LogInWithGoogle)
	auth.POST("/login/fb", h.LogInWithFacebook)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/logout", h.LogOut, authn)
	auth.POST("/logoutAll", h.LogOutAll, authn)

	users := e.Group("/users", authn)
	users.GET("/me", h.GetProfile)
	users.PATCH("/me", h.EditProfile)
	users.DELETE("/me", h.DeleteAccount)

	e.POST("/categories", h.AddCategory, authn)
	e.GET("/categories", h.GetCategories, authn)
	e.POST("/transactions", h.AddTransaction, authn)
	e.GET("/transactions", h.GetTransactions, authn)

	e.GET("/health", h.Health)
}
