package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
	"flixnet/internal/middleware"
	"flixnet/internal/service"
)

// MeHandler returns the identity of the current session.
// @Summary     Current user
// @Description Return the user asserted by the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.AuthResponse
// @Failure     401 {object} api.ErrorResponse
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
		}

		// The signed claims are trusted for the session's duration; no
		// store lookup happens here.
		return c.JSON(http.StatusOK, api.AuthResponse{
			User: api.AuthUser{ID: claims.UserID, Email: claims.Email},
		})
	}
}
