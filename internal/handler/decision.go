package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/allocation"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/queue"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
	queue_publisher "github.com/HareemRehan13/EventSphere-Management-System/internal/service"
)

// Read-side dependencies of the decision handler, declared as small
// interfaces so the handler can be exercised against in-memory stores.
// The MySQL repositories satisfy them directly.
type requestReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Request, error)
	List(ctx context.Context, f repository.RequestFilter) ([]model.Request, error)
}
type boothReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Booth, error)
}
type expoReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Expo, error)
}
type companyReader interface {
	GetByID(ctx context.Context, id uint64) (*model.Company, error)
}
type contactDirectory interface {
	ContactExchange(ctx context.Context, requestID uint64) (*repository.ContactInfo, error)
}

// DecisionHandler serves the organizer side of the allocation
// workflow: the pending-request queue, accept/reject decisions and the
// contact exchange on accepted requests.
type DecisionHandler struct {
	Flow      *allocation.Workflow
	Requests  requestReader
	Expos     expoReader
	Booths    boothReader
	Companies companyReader
	Directory contactDirectory

	// Publish hooks default to the RabbitMQ publisher; tests swap in
	// recorders.
	publishDecided func(ctx context.Context, ev queue.RequestDecidedEvent) error
	publishContact func(ctx context.Context, ev queue.ContactExchangedEvent) error
}

func NewDecisionHandler(flow *allocation.Workflow, requests requestReader, expos expoReader, booths boothReader, companies companyReader, directory contactDirectory) *DecisionHandler {
	if flow == nil || requests == nil || expos == nil || booths == nil || companies == nil || directory == nil {
		panic("nil dependency passed to NewDecisionHandler")
	}
	return &DecisionHandler{
		Flow:           flow,
		Requests:       requests,
		Expos:          expos,
		Booths:         booths,
		Companies:      companies,
		Directory:      directory,
		publishDecided: queue_publisher.PublishRequestDecided,
		publishContact: queue_publisher.PublishContactExchanged,
	}
}

// ListRequests handles GET /v1/requests?expo_id=&status=. expo_id is
// mandatory and must name an expo owned by the caller.
func (h *DecisionHandler) ListRequests(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	expoID, err := strconv.ParseUint(c.QueryParam("expo_id"), 10, 64)
	if err != nil || expoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expo_id required"})
	}

	ctx := c.Request().Context()

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

	filter := repository.RequestFilter{ExpoID: expoID}
	if s := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); s != "" {
		status := model.RequestStatus(s)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		filter.Status = status
	}

	items, err := h.Requests.List(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	views := make([]requestView, len(items))
	for i := range items {
		views[i] = toRequestView(&items[i])
	}
	return c.JSON(http.StatusOK, views)
}

// DecideRequest handles PUT /v1/requests/:id/decision with a body of
// {"decision": "accept"} or {"decision": "reject"}. The workflow
// enforces the state machine; conflicts surface as 409 so a racing
// second decision never silently wins.
func (h *DecisionHandler) DecideRequest(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Decision string `json:"decision"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()

	if err := h.authorizeDecision(ctx, id, organizerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var decided *model.Request
	switch strings.ToLower(strings.TrimSpace(body.Decision)) {
	case "accept":
		decided, err = h.Flow.Approve(ctx, id, organizerID)
	case "reject":
		decided, err = h.Flow.Reject(ctx, id, organizerID)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "decision must be accept or reject"})
	}
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		case errors.Is(err, allocation.ErrInvalidBooth):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booth not found"})
		case errors.Is(err, allocation.ErrAlreadyDecided):
			return c.JSON(http.StatusConflict, echo.Map{"error": "request already decided"})
		case errors.Is(err, allocation.ErrBoothUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booth already booked"})
		case errors.Is(err, allocation.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "decision raced, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decision failed"})
	}

	go h.notifyDecided(decided, organizerID)

	return c.JSON(http.StatusOK, toRequestView(decided))
}

// ContactExchange handles GET /v1/requests/:id/contact-exchange. Only
// accepted requests surface contact details; anything else answers 403
// so callers cannot probe the decision state of foreign requests.
func (h *DecisionHandler) ContactExchange(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()

	if err := h.authorizeDecision(ctx, id, organizerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your expo"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	info, err := h.Directory.ContactExchange(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if info.Status != model.RequestAccepted {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "request not accepted"})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ev := queue.ContactExchangedEvent{
			RequestID:   info.RequestID,
			CompanyName: info.CompanyName,
			RequestedBy: organizerID,
			ExchangedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.publishContact(ctx, ev); err != nil {
			log.Printf("handler: publish of contact event for request %d failed: %v", info.RequestID, err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"request_id":      info.RequestID,
		"company_name":    info.CompanyName,
		"company_email":   info.CompanyEmail,
		"company_contact": info.CompanyContact,
		"submitter_name":  info.SubmitterName,
		"submitter_email": info.SubmitterEmail,
		"submitter_phone": info.SubmitterPhone,
	})
}

// authorizeDecision verifies the request exists and its booth belongs
// to an expo owned by the organizer.
func (h *DecisionHandler) authorizeDecision(ctx context.Context, requestID, organizerID uint64) error {
	req, err := h.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	booth, err := h.Booths.GetByID(ctx, req.BoothID)
	if err != nil {
		return err
	}
	expo, err := h.Expos.GetByID(ctx, booth.ExpoID)
	if err != nil {
		return err
	}
	if expo.OrganizerID != organizerID {
		return repository.ErrForbidden
	}
	return nil
}

// notifyDecided publishes a RequestDecidedEvent, enriched best-effort
// with display names. Publishing never blocks the HTTP response.
func (h *DecisionHandler) notifyDecided(req *model.Request, decidedBy uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.RequestDecidedEvent{
		RequestID: req.ID,
		BoothID:   req.BoothID,
		CompanyID: req.CompanyID,
		Status:    string(req.Status),
		DecidedBy: decidedBy,
		DecidedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if booth, err := h.Booths.GetByID(ctx, req.BoothID); err == nil {
		ev.BoothNumber = booth.BoothNumber
		ev.ExpoID = booth.ExpoID
		if expo, err := h.Expos.GetByID(ctx, booth.ExpoID); err == nil {
			ev.ExpoTitle = expo.Name
		}
	}
	if company, err := h.Companies.GetByID(ctx, req.CompanyID); err == nil {
		ev.CompanyName = company.Name
	}
	if err := h.publishDecided(ctx, ev); err != nil {
		log.Printf("handler: publish of decision event for request %d failed: %v", req.ID, err)
	}
}
