package handler

import (
	"log/slog"
	"net/http"

	"cookbook/internal/delivery/http/response"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CookbookHandler holds dependencies for cookbook sharing handlers.
type CookbookHandler struct {
	uc     usecase.CookbookUsecase
	logger *slog.Logger
}

// NewCookbookHandler is the constructor for CookbookHandler, injected by Fx.
func NewCookbookHandler(uc usecase.CookbookUsecase, logger *slog.Logger) *CookbookHandler {
	return &CookbookHandler{
		uc:     uc,
		logger: logger,
	}
}

// ShareQR renders a QR code PNG for a public cookbook's share link.
func (h *CookbookHandler) ShareQR(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	output, err := h.uc.ShareQR(c.Request().Context(), &usecase.ShareQRInput{UserID: userID})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("X-Share-Url", output.ShareURL)

	return c.Blob(http.StatusOK, "image/png", output.PNG)
}
