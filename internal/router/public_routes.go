package router

import (
	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/handler"
)

// RegisterPublic registers the unauthenticated directory endpoints.
// All of them are read-only and sit behind the Redis response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)

	g.GET("/expos", p.ListExpos)
	g.GET("/expos/:id", p.GetExpo)
	g.GET("/expos/:id/booths", p.ListBooths)
	g.GET("/expos/:id/exhibitors", p.ListExhibitors)
	g.GET("/stats", p.Stats)
}
