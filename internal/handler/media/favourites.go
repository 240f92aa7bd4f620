package media

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
	"flixnet/internal/database"
	"flixnet/internal/middleware"
	"flixnet/internal/service"
)

func sessionClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
	return claims, ok
}

// ListFavouritesHandler returns the current user's favourites.
// @Summary     List favourites
// @Tags        favourites
// @Produce     json
// @Success     200 {array}  api.MediaResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /favourites [get]
func ListFavouritesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := sessionClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
		}

		items, err := listFavourites(c.Request().Context(), db, claims.UserID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
		}

		resp := make([]api.MediaResponse, 0, len(items))
		for _, m := range items {
			resp = append(resp, api.MediaResponse{
				ID:        m.ID,
				Title:     m.Title,
				Year:      m.Year,
				PosterURL: m.PosterURL,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// AddFavouriteHandler marks a media entry as a favourite. Adding the same
// entry twice is a no-op.
// @Summary     Add favourite
// @Tags        favourites
// @Produce     json
// @Param       media_id path int true "Media ID"
// @Success     201 {object} api.OKResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /favourites/{media_id} [post]
func AddFavouriteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := sessionClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
		}

		mediaID, err := strconv.Atoi(c.Param("media_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid media id."})
		}

		ctx := c.Request().Context()
		if _, err := getMediaByID(ctx, db, mediaID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Media not found."})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
		}

		if err := addFavourite(ctx, db, claims.UserID, mediaID); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
		}
		return c.JSON(http.StatusCreated, api.OKResponse{OK: true})
	}
}

// RemoveFavouriteHandler unmarks a favourite.
// @Summary     Remove favourite
// @Tags        favourites
// @Produce     json
// @Param       media_id path int true "Media ID"
// @Success     200 {object} api.OKResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /favourites/{media_id} [delete]
func RemoveFavouriteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := sessionClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
		}

		mediaID, err := strconv.Atoi(c.Param("media_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid media id."})
		}

		if err := removeFavourite(c.Request().Context(), db, claims.UserID, mediaID); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
		}
		return c.JSON(http.StatusOK, api.OKResponse{OK: true})
	}
}
