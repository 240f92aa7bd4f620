package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flixnet/internal/service"
)

// ContextUserKey is where RequireAuth stores the verified session claims.
const ContextUserKey = "user"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "auth_token"

// RequireAuth gates a route behind a valid session cookie. Every failure
// mode (missing cookie, tampered, malformed, expired) gets the same 401
// so a caller learns nothing about why verification failed.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			claims, err := service.VerifySessionToken(cookie.Value, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}
