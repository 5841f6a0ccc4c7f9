// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	SessionHandler  *handler.SessionHandler
	CookbookHandler *handler.CookbookHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	sessionHandler  *handler.SessionHandler
	cookbookHandler *handler.CookbookHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		sessionHandler:  params.SessionHandler,
		cookbookHandler: params.CookbookHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account lifecycle and session routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/users/:userId/confirm", r.accountHandler.ConfirmAccount)
		// Mailed links arrive as plain GETs.
		authGroup.GET("/users/:userId/confirm", r.accountHandler.ConfirmAccount)
		authGroup.POST("/verification/resend", r.accountHandler.ResendVerification)

		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.POST("/refresh", r.sessionHandler.Refresh)
		authGroup.POST("/logout", r.sessionHandler.Logout)

		authGroup.POST("/password/forgot", r.accountHandler.ForgotPassword)
		authGroup.POST("/users/:userId/password/reset", r.accountHandler.ResetPassword)

		// Deletion accepts either a logged-in owner or a mailed token, so
		// authentication is optional here. The GET variant serves the link
		// in the confirmation mail.
		authGroup.DELETE("/users/:userId", r.accountHandler.DeleteAccount, r.authMiddleware.AuthenticateOptional)
		authGroup.GET("/users/:userId/delete", r.accountHandler.DeleteAccount, r.authMiddleware.AuthenticateOptional)
	}

	// Google Sign-In routes
	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.GET("/google", r.sessionHandler.GoogleLogin)
		oauthGroup.POST("/google/callback", r.sessionHandler.GoogleCallback)
	}

	// Public cookbook sharing routes
	e.GET("/cookbooks/:userId/share", r.cookbookHandler.ShareQR)
}
