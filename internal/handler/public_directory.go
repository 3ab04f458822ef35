package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// PublicHandler serves the unauthenticated directory: expo listings,
// booth inventories, accepted exhibitors and platform stats. All of it
// is read-only and sits behind the response cache.
type PublicHandler struct {
	Expos     *repository.ExpoRepo
	Booths    *repository.BoothRepo
	Companies *repository.CompanyRepo
	Users     *repository.UserRepo
	Directory *repository.DirectoryRepo
}

func NewPublicHandler(expos *repository.ExpoRepo, booths *repository.BoothRepo, companies *repository.CompanyRepo, users *repository.UserRepo, directory *repository.DirectoryRepo) *PublicHandler {
	if expos == nil || booths == nil || companies == nil || users == nil || directory == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Expos: expos, Booths: booths, Companies: companies, Users: users, Directory: directory}
}

// ListExpos handles GET /v1/expos.
func (h *PublicHandler) ListExpos(c echo.Context) error {
	items, err := h.Expos.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	views := make([]expoView, len(items))
	for i := range items {
		views[i] = toExpoView(&items[i])
	}
	return c.JSON(http.StatusOK, views)
}

// GetExpo handles GET /v1/expos/:id.
func (h *PublicHandler) GetExpo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	expo, err := h.Expos.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrExpoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toExpoView(expo))
}

// ListBooths handles GET /v1/expos/:id/booths. Exhibitors use this to
// find an AVAILABLE booth before submitting a request.
func (h *PublicHandler) ListBooths(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if _, err := h.Expos.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrExpoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items, err := h.Booths.ListByExpo(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	views := make([]boothView, len(items))
	for i := range items {
		views[i] = toBoothView(&items[i])
	}
	return c.JSON(http.StatusOK, views)
}

// ListExhibitors handles GET /v1/expos/:id/exhibitors: the public
// directory of accepted exhibitors with their booths.
func (h *PublicHandler) ListExhibitors(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	if _, err := h.Expos.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrExpoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	items, err := h.Directory.AcceptedByExpo(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	type exhibitorView struct {
		Company companyView `json:"company"`
		Booth   boothView   `json:"booth"`
		Product string      `json:"product"`
	}
	views := make([]exhibitorView, len(items))
	for i := range items {
		views[i] = exhibitorView{
			Company: toCompanyView(&items[i].Company),
			Booth:   toBoothView(&items[i].Booth),
			Product: items[i].Request.ProductName,
		}
	}
	return c.JSON(http.StatusOK, views)
}

// Stats handles GET /v1/stats with platform-wide counters.
func (h *PublicHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	expos, err := h.Expos.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	booths, err := h.Booths.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	companies, err := h.Companies.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	organizers, err := h.Users.CountByRole(ctx, "ORGANIZER")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	exhibitors, err := h.Users.CountByRole(ctx, "EXHIBITOR")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// A short teaser of upcoming/recent expos for dashboards.
	all, err := h.Expos.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(all) > 5 {
		all = all[:5]
	}
	recent := make([]expoView, len(all))
	for i := range all {
		recent[i] = toExpoView(&all[i])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"expos":        expos,
		"booths":       booths,
		"companies":    companies,
		"organizers":   organizers,
		"exhibitors":   exhibitors,
		"recent_expos": recent,
	})
}
