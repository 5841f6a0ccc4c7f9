package handler

import (
	"log/slog"
	"net/http"
	"time"

	"cookbook/config"
	"cookbook/internal/delivery/http/response"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token. The
// token never appears in a response body.
const refreshCookieName = "refresh_token"

// refreshCookiePath keeps the cookie off every request except the session
// endpoints that need it.
const refreshCookiePath = "/auth"

// SessionHandler holds dependencies for session lifecycle handlers.
type SessionHandler struct {
	uc          usecase.SessionUsecase
	tokenSvc    service.TokenService
	frontendURL string
	logger      *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *SessionHandler {
	frontendURL := ""
	if cfg != nil && cfg.App != nil {
		frontendURL = cfg.App.FrontendURL
	}

	return &SessionHandler{
		uc:          uc,
		tokenSvc:    tokenSvc,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// loginResponse is the session payload returned to the client. The refresh
// token travels only in the session cookie.
type loginResponse struct {
	AccessToken          string    `json:"accessToken"`
	AccessTokenExpiresAt time.Time `json:"accessTokenExpiresAt"`
	User                 any       `json:"user,omitempty"`
}

// Login handles the email login request.
func (h *SessionHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, loginResponse{
		AccessToken:          output.AccessToken,
		AccessTokenExpiresAt: output.AccessTokenExpiresAt,
		User:                 output.User,
	}, "登入成功")
}

// Refresh mints a fresh access token from the session cookie.
func (h *SessionHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Refresh token is missing")
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken: cookie.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		AccessToken:          output.AccessToken,
		AccessTokenExpiresAt: output.AccessTokenExpiresAt,
	}, "Token refreshed successfully")
}

// Logout revokes the session behind the cookie and expires the cookie. A
// request without a cookie is already logged out.
func (h *SessionHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{
			RefreshToken: cookie.Value,
		}); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "登出成功")
}

// GoogleLogin initiates the Google Sign-In flow.
func (h *SessionHandler) GoogleLogin(c echo.Context) error {
	oauthURL, err := h.uc.GoogleAuthURL(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, oauthURL)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"oauth_url": oauthURL,
	}, "Google OAuth URL generated successfully")
}

// GoogleCallback handles the ID token Google posts back after consent.
func (h *SessionHandler) GoogleCallback(c echo.Context) error {
	idToken := c.FormValue("id_token")
	if idToken == "" {
		idToken = c.FormValue("credential")
	}
	if idToken == "" {
		return response.BadRequest(c, "INVALID_INPUT", "ID token is required")
	}

	state := c.FormValue("state")
	if state == "" {
		state = c.QueryParam("state")
	}

	output, err := h.uc.GoogleCallback(c.Request().Context(), &usecase.GoogleCallbackInput{
		IDToken: idToken,
		State:   state,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	// The browser lands here from Google, so hand it back to the frontend.
	// The session rides the cookie; the client fetches its access token
	// through the refresh endpoint.
	if h.frontendURL != "" {
		return c.Redirect(http.StatusSeeOther, h.frontendURL)
	}

	return response.Success(c, http.StatusOK, loginResponse{User: output.User}, "Google 登入成功")
}

func (h *SessionHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(h.tokenSvc.GetRefreshTokenDuration().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *SessionHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
