package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// OrganizerHandler bundles the repositories organizers manipulate:
// their expos and booth inventories.
type OrganizerHandler struct {
	Expos  *repository.ExpoRepo
	Booths *repository.BoothRepo
}

func NewOrganizerHandler(expos *repository.ExpoRepo, booths *repository.BoothRepo) *OrganizerHandler {
	if expos == nil || booths == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{Expos: expos, Booths: booths}
}

type expoReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Venue         string `json:"venue"`
	OrganizerName string `json:"organizer_name"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD
	EndDate       string `json:"end_date"`
}

func (r *expoReq) parse() (*model.Expo, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(r.StartDate))
	if err != nil {
		return nil, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(r.EndDate))
	if err != nil {
		return nil, errors.New("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, errors.New("end_date before start_date")
	}
	return &model.Expo{
		Name:          name,
		Description:   strings.TrimSpace(r.Description),
		Venue:         strings.TrimSpace(r.Venue),
		OrganizerName: strings.TrimSpace(r.OrganizerName),
		StartDate:     start,
		EndDate:       end,
	}, nil
}

// CreateExpo handles POST /v1/expos.
func (h *OrganizerHandler) CreateExpo(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body expoReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	expo, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	expo.OrganizerID = organizerID

	if err := h.Expos.Create(c.Request().Context(), expo); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create expo"})
	}
	return c.JSON(http.StatusCreated, toExpoView(expo))
}

// UpdateExpo handles PUT/PATCH /v1/expos/:id. Only the descriptive
// metadata is editable; ownership is enforced in the repository.
func (h *OrganizerHandler) UpdateExpo(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body expoReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	expo, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	expo.ID = id

	if err := h.Expos.Update(c.Request().Context(), expo, organizerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrExpoNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Expos.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toExpoView(updated))
}

// DeleteExpo handles DELETE /v1/expos/:id. Refused while any booth of
// the expo is BOOKED.
func (h *OrganizerHandler) DeleteExpo(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Expos.Delete(c.Request().Context(), id, organizerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrExpoNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "expo has booked booths"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
