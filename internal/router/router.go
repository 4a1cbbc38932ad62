package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/vanklomk/zoo-school-carpool/internal/config"     // import config for middleware settings
	"github.com/vanklomk/zoo-school-carpool/internal/handler"    // import the handlers that implement business logic
	"github.com/vanklomk/zoo-school-carpool/internal/middleware" // import middleware for rate limiting and response caching
)

// RegisterRoutes registers routes that do not require any middleware on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterCarpools registers the carpool endpoints under /v1.  The rate
// limiter guards every route in the group; the Redis response cache wraps
// only the read-only routes, acting as the thin read-through layer in
// front of List.  Both middlewares degrade to pass-through when rdb is
// nil, so the API works without Redis.
func RegisterCarpools(e *echo.Echo, h *handler.CarpoolHandler, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	g := e.Group("/v1", rl)
	// Read-only views: cacheable, safe under unbounded concurrency.
	g.GET("/carpools", h.ListCarpools, cache)
	g.GET("/carpools/calendar", h.CarpoolDates, cache)
	g.GET("/carpools/calendar/:date", h.CarpoolsOnDate, cache)
	// Mutations: validated creation and the compare-and-swap join.
	g.POST("/carpools", h.CreateCarpool)
	g.POST("/carpools/:id/join", h.JoinCarpool)
}
