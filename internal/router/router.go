// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/solara/venue-reservation/internal/config"
	"github.com/solara/venue-reservation/internal/handler"
	"github.com/solara/venue-reservation/internal/middleware"
	"github.com/solara/venue-reservation/internal/model"
)

// Deps collects everything route registration needs.  Redis may be
// nil; the cache and rate limiter then become pass-throughs.
type Deps struct {
	Cfg          config.Config
	Auth         *handler.AuthHandler
	Events       *handler.EventHandler
	Reservations *handler.ReservationHandler
	Redis        *redis.Client
}

// Register sets up every route.  Layout:
//
//	/healthz                         liveness
//	/v1/auth/*                       register, login
//	/v1/events, /v1/reservations/hall/dates   public reads (cached)
//	/v1/*                            authenticated customer+admin
//	/v1/admin/*                      admin only
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)

	// Unauthenticated.
	e.POST("/v1/auth/register", d.Auth.Register)
	e.POST("/v1/auth/login", d.Auth.Login)
	e.GET("/v1/events", d.Events.List, cache)
	e.GET("/v1/events/:id", d.Events.Get)
	e.GET("/v1/reservations/hall/dates", d.Reservations.ListHallDates, cache)

	// Authenticated, either role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	auth.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	auth.GET("/me", d.Auth.Me)
	auth.GET("/my-reservations", d.Reservations.ListMine)
	auth.POST("/reservations", d.Reservations.CreateSeat, limit)
	auth.POST("/reservations/hall", d.Reservations.CreateHall, limit)

	// Admin only.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/users", d.Auth.CreateAdmin)
	admin.GET("/reservations", d.Reservations.ListAll)
	admin.POST("/events", d.Events.Create)
	admin.PATCH("/events/:id", d.Events.Update)
	admin.DELETE("/events/:id", d.Events.Delete)
}
