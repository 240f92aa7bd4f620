package router

import (
	"github.com/labstack/echo/v4"

	"flixnet/internal/cache"
	"flixnet/internal/config"
	"flixnet/internal/database"
	"flixnet/internal/handler"
	"flixnet/internal/handler/auth"
	"flixnet/internal/handler/media"
	"flixnet/internal/middleware"
	"flixnet/internal/worker"
)

// Setup registers all routes and their middleware.
func Setup(e *echo.Echo, cfg *config.Config, db database.DB, rdb cache.Cache, wp worker.Pool) {
	api := e.Group("/api")

	api.GET("/health", handler.HealthHandler())

	api.POST("/auth/register", auth.RegisterHandler(cfg, db, wp))
	api.POST("/auth/login", auth.LoginHandler(cfg, db, wp))
	api.GET("/auth/me", auth.MeHandler(), middleware.RequireAuth(cfg.JWTSecret))
	api.POST("/auth/logout", auth.LogoutHandler())

	// The catalog itself is public; only favourites need a session.
	api.GET("/media", media.ListMediaHandler(db, rdb))

	fav := api.Group("/favourites", middleware.RequireAuth(cfg.JWTSecret))
	fav.GET("", media.ListFavouritesHandler(db))
	fav.POST("/:media_id", media.AddFavouriteHandler(db))
	fav.DELETE("/:media_id", media.RemoveFavouriteHandler(db))
}
