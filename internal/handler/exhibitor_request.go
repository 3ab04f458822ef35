package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/allocation"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// SubmitRequest handles POST /v1/requests. The heavy lifting lives in
// the allocation workflow; this handler only authenticates, validates
// company ownership and maps workflow errors onto HTTP statuses.
func (h *ExhibitorHandler) SubmitRequest(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ExpoID             uint64 `json:"expo_id"`
		BoothID            uint64 `json:"booth_id"`
		CompanyID          uint64 `json:"company_id"`
		ProductName        string `json:"product_name"`
		ProductDescription string `json:"product_description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.BoothID == 0 || body.CompanyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booth_id and company_id required"})
	}
	productName := strings.TrimSpace(body.ProductName)
	if productName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_name required"})
	}

	ctx := c.Request().Context()

	// A submission is only valid on behalf of the caller's own company.
	if _, err := h.Companies.GetByIDAndOwner(ctx, body.CompanyID, userID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	req, err := h.Flow.Submit(ctx, allocation.SubmitInput{
		ExpoID:             body.ExpoID,
		BoothID:            body.BoothID,
		CompanyID:          body.CompanyID,
		SubmitterID:        userID,
		ProductName:        productName,
		ProductDescription: strings.TrimSpace(body.ProductDescription),
	})
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidBooth):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booth not found"})
		case errors.Is(err, allocation.ErrBoothUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booth already booked"})
		case errors.Is(err, allocation.ErrDuplicateRequest):
			return c.JSON(http.StatusConflict, echo.Map{"error": "active request already exists for this booth"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submit failed"})
	}
	return c.JSON(http.StatusCreated, toRequestView(req))
}

// ListMyRequests handles GET /v1/my-requests. Optional ?status=
// narrows the result.
func (h *ExhibitorHandler) ListMyRequests(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filter := repository.RequestFilter{SubmitterID: userID}
	if s := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); s != "" {
		status := model.RequestStatus(s)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		filter.Status = status
	}

	items, err := h.Requests.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	views := make([]requestView, len(items))
	for i := range items {
		views[i] = toRequestView(&items[i])
	}
	return c.JSON(http.StatusOK, views)
}
