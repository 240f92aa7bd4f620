package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
)

// HealthHandler reports liveness.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} api.OKResponse
// @Router      /health [get]
func HealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.OKResponse{OK: true})
	}
}
