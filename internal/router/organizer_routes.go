package router

import (
	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/handler"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/middleware"
)

// RegisterOrganizer registers ORGANIZER-scoped endpoints under /v1.
// The decision routes additionally carry the token-bucket limiter so a
// misbehaving client cannot hammer the conditional-update path.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, d *handler.DecisionHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORGANIZER"),
	)

	// ---- Expos ----
	g.POST("/expos", o.CreateExpo)
	g.PUT("/expos/:id", o.UpdateExpo)
	g.PATCH("/expos/:id", o.UpdateExpo)
	g.DELETE("/expos/:id", o.DeleteExpo)

	// ---- Booth inventory ----
	g.POST("/expos/:id/booths", o.CreateBooths)
	g.DELETE("/booths/:id", o.DeleteBooth)

	// ---- Allocation queue ----
	g.GET("/requests", d.ListRequests)
	g.PUT("/requests/:id/decision", d.DecideRequest, limiter)
	g.GET("/requests/:id/contact-exchange", d.ContactExchange)
}
