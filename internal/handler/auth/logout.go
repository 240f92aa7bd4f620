package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
)

// LogoutHandler clears the session cookie. The token itself stays valid
// until expiry; there is no server-side revocation in this scheme.
// @Summary     Log out
// @Description Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.OKResponse
// @Router      /auth/logout [post]
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		clearSessionCookie(c)
		return c.JSON(http.StatusOK, api.OKResponse{OK: true})
	}
}
