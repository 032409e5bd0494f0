// Package router defines how HTTP routes are registered for the API.  The
// route layout mirrors the mobile client's expectations: /api/auth for
// sessions, /api/restaurants and /api/menu for the public catalog,
// /api/reservations for the user lifecycle and /api/admin for everything
// admin-only.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tablereserve/table-reserve/internal/config"
	"github.com/tablereserve/table-reserve/internal/handler"
	"github.com/tablereserve/table-reserve/internal/middleware"
	"github.com/tablereserve/table-reserve/internal/model"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth        *handler.AuthHandler
	Public      *handler.PublicHandler
	Menu        *handler.MenuHandler
	Reservation *handler.ReservationHandler
	Admin       *handler.AdminHandler
}

// Register sets up all routes and their middleware on the provided Echo
// instance.  rdb may be nil, in which case the cache and rate limiter are
// disabled pass-throughs.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Uploaded restaurant images are served as static files; the database
	// only ever stores the resulting URL.
	e.Static("/uploads", cfg.UploadDir)

	// Auth endpoints are rate limited to slow down credential stuffing.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	authGroup := e.Group("/api/auth", limiter)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", h.Auth.Me, middleware.JWTAuth(cfg.JWTSecret))

	// Public catalog reads sit behind the Redis response cache.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/api/restaurants", h.Public.ListRestaurants, cache)
	e.GET("/api/menu/:restaurantId", h.Public.ListMenu, cache)

	// Menu-item creation is an admin catalog mutation even though it lives
	// outside the /api/admin prefix.
	e.POST("/api/menu/:restaurantId", h.Menu.CreateItem,
		middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RoleAdmin))

	// User reservation lifecycle; any authenticated role may hold
	// reservations, ownership is enforced per request by the guard.
	res := e.Group("/api/reservations", middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	res.POST("", h.Reservation.Create)
	res.PUT("/:id", h.Reservation.Update)
	res.DELETE("/:id", h.Reservation.Delete)
	res.GET("/user/:userId", h.Reservation.ListForUser)

	// Admin surface.
	admin := e.Group("/api/admin", middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin))
	admin.GET("/restaurants", h.Admin.ListRestaurants)
	admin.POST("/restaurants", h.Admin.CreateRestaurant)
	admin.PUT("/restaurants/:id", h.Admin.UpdateRestaurant)
	admin.DELETE("/restaurants/:id", h.Admin.DeleteRestaurant)
	admin.GET("/restaurants/:id/reservations", h.Admin.ListReservations)
	admin.PUT("/reservations/:id/status", h.Admin.DecideReservation)
}
