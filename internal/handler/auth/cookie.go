package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flixnet/internal/middleware"
	"flixnet/internal/service"
)

// Cookie lifetime in seconds, matching the token TTL.
var sessionCookieMaxAge = int(service.SessionTTL.Seconds())

// setSessionCookie attaches the session token to the response. Secure is
// left off for the local development posture; revisit before serving over
// HTTPS.
func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})
}

// clearSessionCookie expires the cookie using the same attributes it was
// set with; mismatched attributes silently fail to clear in browsers.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})
}
