package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/allocation"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// companyStore is the company repository surface the exhibitor
// handler needs; *repository.CompanyRepo satisfies it.
type companyStore interface {
	Create(ctx context.Context, c *model.Company) error
	GetByID(ctx context.Context, id uint64) (*model.Company, error)
	GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Company, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.Company, error)
	Update(ctx context.Context, c *model.Company, userID uint64) error
	Delete(ctx context.Context, id, userID uint64) error
}

// ExhibitorHandler bundles what exhibitors need: their company
// profiles and the request submission path through the allocation
// workflow.
type ExhibitorHandler struct {
	Companies companyStore
	Requests  requestReader
	Flow      *allocation.Workflow
}

func NewExhibitorHandler(companies companyStore, requests requestReader, flow *allocation.Workflow) *ExhibitorHandler {
	if companies == nil || requests == nil || flow == nil {
		panic("nil dependency passed to NewExhibitorHandler")
	}
	return &ExhibitorHandler{Companies: companies, Requests: requests, Flow: flow}
}

type companyReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Service     string `json:"service"`
	DocumentRef string `json:"document_ref"`
}

func (r *companyReq) parse() (*model.Company, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	return &model.Company{
		Name:        name,
		Description: strings.TrimSpace(r.Description),
		Address:     strings.TrimSpace(r.Address),
		Email:       email,
		Contact:     strings.TrimSpace(r.Contact),
		Service:     strings.TrimSpace(r.Service),
		DocumentRef: strings.TrimSpace(r.DocumentRef),
	}, nil
}

// CreateCompany handles POST /v1/companies.
func (h *ExhibitorHandler) CreateCompany(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body companyReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	company, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	company.UserID = userID

	if err := h.Companies.Create(c.Request().Context(), company); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create company"})
	}
	return c.JSON(http.StatusCreated, toCompanyView(company))
}

// ListCompanies handles GET /v1/companies and returns the caller's
// profiles only.
func (h *ExhibitorHandler) ListCompanies(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Companies.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	views := make([]companyView, len(items))
	for i := range items {
		views[i] = toCompanyView(&items[i])
	}
	return c.JSON(http.StatusOK, views)
}

// GetCompany handles GET /v1/companies/:id.
func (h *ExhibitorHandler) GetCompany(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	company, err := h.Companies.GetByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toCompanyView(company))
}

// UpdateCompany handles PUT /v1/companies/:id.
func (h *ExhibitorHandler) UpdateCompany(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body companyReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	company, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	company.ID = id

	if err := h.Companies.Update(c.Request().Context(), company, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCompanyNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your company"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Companies.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toCompanyView(updated))
}

// DeleteCompany handles DELETE /v1/companies/:id.
func (h *ExhibitorHandler) DeleteCompany(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Companies.Delete(c.Request().Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCompanyNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your company"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "company still has booth requests"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
