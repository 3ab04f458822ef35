package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/allocation"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// memCompanyStore implements the full companyStore surface over a map.
type memCompanyStore struct {
	nextID    uint64
	companies map[uint64]*model.Company
}

func (m *memCompanyStore) Create(_ context.Context, c *model.Company) error {
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}

func (m *memCompanyStore) GetByID(_ context.Context, id uint64) (*model.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyStore) GetByIDAndOwner(_ context.Context, id, userID uint64) (*model.Company, error) {
	c, ok := m.companies[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyStore) ListByOwner(_ context.Context, userID uint64) ([]model.Company, error) {
	var out []model.Company
	for _, c := range m.companies {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCompanyStore) Update(_ context.Context, c *model.Company, userID uint64) error {
	existing, ok := m.companies[c.ID]
	if !ok {
		return repository.ErrCompanyNotFound
	}
	if existing.UserID != userID {
		return repository.ErrForbidden
	}
	c.UserID = existing.UserID
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}

func (m *memCompanyStore) Delete(_ context.Context, id, userID uint64) error {
	existing, ok := m.companies[id]
	if !ok {
		return repository.ErrCompanyNotFound
	}
	if existing.UserID != userID {
		return repository.ErrForbidden
	}
	delete(m.companies, id)
	return nil
}

const exhibitorID = uint64(3)

type submitFixture struct {
	handler  *ExhibitorHandler
	booths   *memBooths
	requests *memRequests
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()

	booths := &memBooths{booths: map[uint64]*model.Booth{
		10: {ID: 10, ExpoID: 5, BoothNumber: "A1", State: model.BoothAvailable},
		11: {ID: 11, ExpoID: 5, BoothNumber: "A2", State: model.BoothBooked},
	}}
	requests := &memRequests{requests: map[uint64]*model.Request{}, booths: booths}
	booths.requests = requests
	companies := &memCompanyStore{nextID: 7, companies: map[uint64]*model.Company{
		7: {ID: 7, UserID: exhibitorID, Name: "Helios GmbH"},
	}}

	flow := allocation.New(booths, requests, log.New(log.Writer(), "", 0))
	return &submitFixture{
		handler:  NewExhibitorHandler(companies, requests, flow),
		booths:   booths,
		requests: requests,
	}
}

func (f *submitFixture) submit(t *testing.T, userID uint64, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/requests", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/requests")
	c.Set("user_id", userID)
	require.NoError(t, f.handler.SubmitRequest(c))
	return rec
}

func TestSubmitRequest(t *testing.T) {
	t.Run("creates pending request and moves booth", func(t *testing.T) {
		f := newSubmitFixture(t)
		rec := f.submit(t, exhibitorID, `{"expo_id":5,"booth_id":10,"company_id":7,"product_name":"Solar panels"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp requestView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, uint64(10), resp.BoothID)

		booth, err := f.booths.GetByID(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, model.BoothPending, booth.State)
	})

	t.Run("foreign company is refused", func(t *testing.T) {
		f := newSubmitFixture(t)
		rec := f.submit(t, uint64(42), `{"booth_id":10,"company_id":7,"product_name":"Solar panels"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown booth", func(t *testing.T) {
		f := newSubmitFixture(t)
		rec := f.submit(t, exhibitorID, `{"booth_id":404,"company_id":7,"product_name":"Solar panels"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("booked booth conflicts", func(t *testing.T) {
		f := newSubmitFixture(t)
		rec := f.submit(t, exhibitorID, `{"booth_id":11,"company_id":7,"product_name":"Solar panels"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("duplicate active request conflicts", func(t *testing.T) {
		f := newSubmitFixture(t)
		body := `{"booth_id":10,"company_id":7,"product_name":"Solar panels"}`
		require.Equal(t, http.StatusCreated, f.submit(t, exhibitorID, body).Code)
		assert.Equal(t, http.StatusConflict, f.submit(t, exhibitorID, body).Code)
	})

	t.Run("missing product name", func(t *testing.T) {
		f := newSubmitFixture(t)
		rec := f.submit(t, exhibitorID, `{"booth_id":10,"company_id":7}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
