package auth

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
	"flixnet/internal/config"
	"flixnet/internal/database"
	"flixnet/internal/service"
	"flixnet/internal/worker"
)

// LoginHandler verifies credentials and starts a session.
// @Summary     Log in
// @Description Verify email and password; sets the session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "Login payload"
// @Success     200 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(cfg *config.Config, db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgCredentialsRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgCredentialsRequired})
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
			}
			// Same body as a password mismatch so account existence never
			// leaks.
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: msgInvalidCredentials})
		}

		if err := comparePasswordOn(wp, user.PasswordHash, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: msgInvalidCredentials})
		}

		token, err := issueSessionToken(*user, cfg.JWTSecret, service.SessionTTL)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
		}
		setSessionCookie(c, token)

		return c.JSON(http.StatusOK, api.AuthResponse{
			User: api.AuthUser{ID: user.ID, Email: user.Email},
		})
	}
}
