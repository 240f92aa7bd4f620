package media

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flixnet/internal/api"
	"flixnet/internal/cache"
	"flixnet/internal/database"
	"flixnet/internal/store"
)

var (
	listMedia       = store.ListMedia
	getMediaByID    = store.GetMediaByID
	listFavourites  = store.ListFavourites
	addFavourite    = store.AddFavourite
	removeFavourite = store.RemoveFavourite
)

const (
	listCacheKey = "media:list"
	listCacheTTL = 5 * time.Minute
)

// ListMediaHandler returns the catalog. The serialized list is kept in
// Redis; cache failures fall through to the store.
// @Summary     List media
// @Tags        media
// @Produce     json
// @Success     200 {array}  api.MediaResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /media [get]
func ListMediaHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if cached, err := rdb.Get(ctx, listCacheKey).Result(); err == nil && cached != "" {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}

		items, err := listMedia(ctx, db)
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

		if buf, err := json.Marshal(resp); err == nil {
			rdb.Set(ctx, listCacheKey, buf, listCacheTTL)
		}

		return c.JSON(http.StatusOK, resp)
	}
}
