// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverymiddleware "cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/response"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Generic acknowledgements for enumeration-sensitive endpoints. The response
// is identical whether or not the address belongs to an account.
const (
	msgVerificationQueued  = "若該信箱已註冊且尚未驗證,驗證信已寄出"
	msgPasswordResetQueued = "若該信箱已註冊,重設密碼信已寄出"
)

// AccountHandler holds dependencies for account lifecycle handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	// The account exists but cannot log in until the mailed link is used.
	return response.Accepted(c, output.User, "註冊成功,請至信箱完成驗證")
}

// ConfirmAccount handles the email verification link.
func (h *AccountHandler) ConfirmAccount(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	token := c.QueryParam("token")
	if token == "" {
		token = c.FormValue("token")
	}
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Token is required")
	}

	output, err := h.uc.ConfirmAccount(c.Request().Context(), &usecase.ConfirmAccountInput{
		UserID: userID,
		Token:  token,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.User, "帳號驗證完成")
}

// ResendVerification handles a request for a fresh verification mail.
func (h *AccountHandler) ResendVerification(c echo.Context) error {
	var input usecase.ResendVerificationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResendVerification(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Accepted(c, nil, msgVerificationQueued)
}

// ForgotPassword handles a password reset request.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var input usecase.ForgotPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Accepted(c, nil, msgPasswordResetQueued)
}

// resetPasswordRequest is the body of the password reset completion request.
type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ResetPassword handles the mailed reset link.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err = h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		UserID:      userID,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "密碼已重設,請重新登入")
}

// deleteAccountRequest is the optional body of the account deletion request.
type deleteAccountRequest struct {
	Password    string `json:"password"`
	DeleteToken string `json:"deleteToken"`
}

// DeleteAccount handles the two-step account deletion protocol. The route is
// behind optional authentication, so the actor may be anonymous when the
// request carries a mailed deletion token.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if req.DeleteToken == "" {
		req.DeleteToken = c.QueryParam("token")
	}

	actorID := uuid.Nil
	if v, ok := c.Get(deliverymiddleware.ContextKeyUserID).(uuid.UUID); ok {
		actorID = v
	}
	actorMethod := ""
	if v, ok := c.Get(deliverymiddleware.ContextKeyAuthMethod).(string); ok {
		actorMethod = v
	}

	output, err := h.uc.DeleteAccount(c.Request().Context(), &usecase.DeleteAccountInput{
		TargetUserID:    targetID,
		Password:        req.Password,
		DeleteToken:     req.DeleteToken,
		ActorUserID:     actorID,
		ActorAuthMethod: actorMethod,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if output.ConfirmationSent {
		return response.Accepted(c, nil, "刪除確認信已寄出,請至信箱完成確認")
	}

	return response.Success(c, http.StatusOK, map[string]int64{
		"reviewsRemoved": output.ReviewsRemoved,
	}, "帳號已刪除")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
