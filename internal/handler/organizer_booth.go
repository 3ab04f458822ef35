package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// CreateBooths handles POST /v1/expos/:id/booths. Two payload shapes
// are accepted: a single booth {booth_number, floor}, or a bulk
// provisioning request {floor, count, prefix} that generates
// prefix+1..prefix+count on the floor.
func (h *OrganizerHandler) CreateBooths(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	expoID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var body struct {
		BoothNumber string `json:"booth_number"`
		Floor       uint32 `json:"floor"`
		Count       int    `json:"count"`
		Prefix      string `json:"prefix"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	// Only the owning organizer may provision booths.
	expo, err := h.Expos.GetByID(ctx, expoID)
	if err != nil {
		if errors.Is(err, repository.ErrExpoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if expo.OrganizerID != organizerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
	}

	if number := strings.TrimSpace(body.BoothNumber); number != "" {
		booth := &model.Booth{ExpoID: expoID, BoothNumber: number, Floor: body.Floor}
		if err := h.Booths.Create(ctx, booth); err != nil {
			if errors.Is(err, repository.ErrBoothNumberExists) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "booth number already exists"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booth"})
		}
		return c.JSON(http.StatusCreated, toBoothView(booth))
	}

	if body.Count < 1 || body.Count > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be between 1 and 500"})
	}
	prefix := strings.TrimSpace(body.Prefix)
	booths := make([]model.Booth, 0, body.Count)
	for i := 1; i <= body.Count; i++ {
		booths = append(booths, model.Booth{
			ExpoID:      expoID,
			BoothNumber: fmt.Sprintf("%s%d", prefix, i),
			Floor:       body.Floor,
		})
	}
	if err := h.Booths.CreateBulk(ctx, booths); err != nil {
		if errors.Is(err, repository.ErrBoothNumberExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booth number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booths"})
	}

	views := make([]boothView, len(booths))
	for i := range booths {
		views[i] = toBoothView(&booths[i])
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(views), "booths": views})
}

// DeleteBooth handles DELETE /v1/booths/:id. Booths with any
// non-rejected request are refused to keep the audit trail intact.
func (h *OrganizerHandler) DeleteBooth(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()

	booth, err := h.Booths.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBoothNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booth not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	expo, err := h.Expos.GetByID(ctx, booth.ExpoID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if expo.OrganizerID != organizerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
	}

	if err := h.Booths.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBoothNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booth not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booth has requests"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
