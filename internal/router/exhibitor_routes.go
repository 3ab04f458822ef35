package router

import (
	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/handler"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/middleware"
)

// RegisterExhibitor registers EXHIBITOR-scoped endpoints under /v1.
// Request submission is rate limited; the company CRUD is not.
func RegisterExhibitor(e *echo.Echo, x *handler.ExhibitorHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("EXHIBITOR"),
	)

	// ---- Company profiles ----
	g.POST("/companies", x.CreateCompany)
	g.GET("/companies", x.ListCompanies)
	g.GET("/companies/:id", x.GetCompany)
	g.PUT("/companies/:id", x.UpdateCompany)
	g.DELETE("/companies/:id", x.DeleteCompany)

	// ---- Booth requests ----
	g.POST("/requests", x.SubmitRequest, limiter)
	g.GET("/my-requests", x.ListMyRequests)
}
