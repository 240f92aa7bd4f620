package auth

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
	"flixnet/internal/config"
	"flixnet/internal/database"
	"flixnet/internal/model"
	"flixnet/internal/service"
	"flixnet/internal/store"
	"flixnet/internal/worker"
)

var (
	hashPasswordOn    = service.HashPasswordOn
	comparePasswordOn = service.ComparePasswordOn
	issueSessionToken = service.IssueSessionToken
	getUserByEmail    = store.GetUserByEmail
	createUser        = store.CreateUser
)

const (
	msgCredentialsRequired = "Email and password required."
	msgPasswordTooShort    = "Password must be at least 8 characters."
	msgEmailTaken          = "Email already registered."
	msgInvalidCredentials  = "Invalid credentials."
	msgServerError         = "Server error."
)

const minPasswordLength = 8

// RegisterHandler creates an account and starts a session.
// @Summary     Register a new user
// @Description Create an account with email and password; sets the session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterRequest true "Registration payload"
// @Success     201 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(cfg *config.Config, db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgCredentialsRequired})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgCredentialsRequired})
		}
		if len(req.Password) < minPasswordLength {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgPasswordTooShort})
		}

		ctx := c.Request().Context()
		_, err := getUserByEmail(ctx, db, req.Email)
		switch {
		case err == nil:
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: msgEmailTaken})
		case !errors.Is(err, pgx.ErrNoRows):
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
		}

		hash, err := hashPasswordOn(wp, req.Password)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
		}

		user, err := createUser(ctx, db, &model.User{Email: req.Email, PasswordHash: hash})
		if err != nil {
			// Two concurrent registrations can both pass the lookup above;
			// the unique index decides the winner at insert time.
			if errors.Is(err, store.ErrEmailTaken) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: msgEmailTaken})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
		}

		token, err := issueSessionToken(*user, cfg.JWTSecret, service.SessionTTL)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgServerError})
		}
		setSessionCookie(c, token)

		return c.JSON(http.StatusCreated, api.AuthResponse{
			User: api.AuthUser{ID: user.ID, Email: user.Email},
		})
	}
}
