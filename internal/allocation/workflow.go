package allocation

import (
	"context"
	"errors"
	"log"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// BoothLedger is the slice of the booth repository the workflow
// drives. SetState and Book are conditional updates: implementations
// must apply the write only while the booth is in the expected state
// and report repository.ErrStateConflict otherwise. Release moves a
// PENDING booth back to AVAILABLE, and implementations must make its
// no-active-request check atomic with the transition itself: a request
// created concurrently either blocks the release or observes the booth
// AVAILABLE, never both.
type BoothLedger interface {
	GetByID(ctx context.Context, id uint64) (*model.Booth, error)
	SetState(ctx context.Context, id uint64, next, expected model.BoothState) error
	Book(ctx context.Context, id, companyID uint64) error
	Release(ctx context.Context, id uint64) error
}

// RequestStore is the slice of the request repository the workflow
// drives. SetStatus carries the same conditional-update contract as
// BoothLedger.SetState.
type RequestStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Request, error)
	Create(ctx context.Context, req *model.Request) error
	SetStatus(ctx context.Context, id uint64, next, expected model.RequestStatus, decidedBy *uint64) error
	RejectSiblings(ctx context.Context, boothID, exceptID uint64) (int64, error)
	HasActive(ctx context.Context, boothID, companyID uint64) (bool, error)
	HasActiveOlderThan(ctx context.Context, boothID, companyID, id uint64) (bool, error)
}

// Workflow orchestrates booth allocation. All booth and request
// mutation in the system goes through its three operations; nothing
// else may write either store. The conditional guards make each
// operation linearizable per booth without any global lock, so
// operations on different booths proceed fully in parallel.
type Workflow struct {
	booths   BoothLedger
	requests RequestStore
	logger   *log.Logger
}

// New constructs a Workflow. logger may be nil, in which case the
// standard logger is used for best-effort-path warnings.
func New(booths BoothLedger, requests RequestStore, logger *log.Logger) *Workflow {
	if booths == nil || requests == nil {
		panic("nil store passed to allocation.New")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Workflow{booths: booths, requests: requests, logger: logger}
}

// SubmitInput carries a validated submission from the HTTP boundary.
// ExpoID is the expo implied by the caller's context; zero skips the
// booth/expo consistency check.
type SubmitInput struct {
	ExpoID             uint64
	BoothID            uint64
	CompanyID          uint64
	SubmitterID        uint64
	ProductName        string
	ProductDescription string
}

// Submit validates and records a new exhibitor request, then moves the
// booth AVAILABLE -> PENDING (a no-op when the booth is already
// PENDING). A booth that is BOOKED is refused up front; a booth that
// becomes BOOKED between the pre-check and the ledger move loses the
// race and the freshly created request is rejected again before the
// error is surfaced, so no pending request is left behind on a booked
// booth.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*model.Request, error) {
	booth, err := w.booths.GetByID(ctx, in.BoothID)
	if err != nil {
		if errors.Is(err, repository.ErrBoothNotFound) {
			return nil, ErrInvalidBooth
		}
		return nil, err
	}
	if in.ExpoID != 0 && booth.ExpoID != in.ExpoID {
		return nil, ErrInvalidBooth
	}
	if booth.State == model.BoothBooked {
		return nil, ErrBoothUnavailable
	}

	dup, err := w.requests.HasActive(ctx, in.BoothID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateRequest
	}

	req := &model.Request{
		BoothID:            in.BoothID,
		CompanyID:          in.CompanyID,
		SubmitterID:        in.SubmitterID,
		ProductName:        in.ProductName,
		ProductDescription: in.ProductDescription,
	}
	if err := w.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	// The HasActive probe above is only a fast path: two submissions by
	// the same company can both pass it before either insert lands. The
	// re-check below is ordered by request id, so of any set of racers
	// exactly the oldest survives and every younger one rejects itself.
	older, err := w.requests.HasActiveOlderThan(ctx, in.BoothID, in.CompanyID, req.ID)
	if err != nil {
		return nil, err
	}
	if older {
		if serr := w.requests.SetStatus(ctx, req.ID, model.RequestRejected, model.RequestPending, nil); serr != nil {
			w.logger.Printf("allocation: reject of duplicate request %d failed: %v", req.ID, serr)
		}
		return nil, ErrDuplicateRequest
	}

	err = w.booths.SetState(ctx, in.BoothID, model.BoothPending, model.BoothAvailable)
	if err != nil && errors.Is(err, repository.ErrStateConflict) {
		// Either another pending request beat us (fine) or an approve
		// booked the booth under us (our request must not stay pending).
		current, rerr := w.booths.GetByID(ctx, in.BoothID)
		if rerr != nil {
			return nil, rerr
		}
		if current.State == model.BoothBooked {
			if serr := w.requests.SetStatus(ctx, req.ID, model.RequestRejected, model.RequestPending, nil); serr != nil {
				w.logger.Printf("allocation: reject of raced request %d failed: %v", req.ID, serr)
			}
			return nil, ErrBoothUnavailable
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Approve decides a pending request in the exhibitor's favor. The
// booth move PENDING -> BOOKED and the request move PENDING ->
// ACCEPTED are both conditional; if the second fails after the first
// succeeded, the booth is rolled back to PENDING so a failure between
// the two steps never leaves the pair inconsistent. After a win,
// every other pending request on the booth is rejected as best-effort
// cleanup: a failure there is logged, not fatal, because the booth
// invariant no longer depends on the siblings once the booth is
// BOOKED.
func (w *Workflow) Approve(ctx context.Context, requestID, adminID uint64) (*model.Request, error) {
	req, err := w.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != model.RequestPending {
		return nil, ErrAlreadyDecided
	}

	if err := w.booths.Book(ctx, req.BoothID, req.CompanyID); err != nil {
		switch {
		case errors.Is(err, repository.ErrStateConflict):
			return nil, ErrBoothUnavailable
		case errors.Is(err, repository.ErrBoothNotFound):
			return nil, ErrInvalidBooth
		}
		return nil, err
	}

	if err := w.requests.SetStatus(ctx, requestID, model.RequestAccepted, model.RequestPending, &adminID); err != nil {
		// Undo the booking so the booth does not claim a winner that
		// was decided elsewhere.
		if rbErr := w.booths.SetState(ctx, req.BoothID, model.BoothPending, model.BoothBooked); rbErr != nil {
			w.logger.Printf("allocation: rollback of booth %d after failed accept of request %d: %v", req.BoothID, requestID, rbErr)
		}
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if n, err := w.requests.RejectSiblings(ctx, req.BoothID, requestID); err != nil {
		w.logger.Printf("allocation: sibling cleanup on booth %d failed: %v", req.BoothID, err)
	} else if n > 0 {
		w.logger.Printf("allocation: auto-rejected %d sibling request(s) on booth %d", n, req.BoothID)
	}

	req.Status = model.RequestAccepted
	req.DecidedBy = &adminID
	return req, nil
}

// Reject decides a pending request against the exhibitor, then asks
// the ledger to release the booth. Release only applies while the
// booth is PENDING and no pending or accepted request remains, and
// the ledger performs that check atomically with the transition, so a
// submission landing mid-reject either keeps the booth PENDING or
// finds it AVAILABLE and moves it itself. The booth state stays
// derivable from the requests either way.
func (w *Workflow) Reject(ctx context.Context, requestID, adminID uint64) (*model.Request, error) {
	req, err := w.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Status != model.RequestPending {
		return nil, ErrAlreadyDecided
	}

	if err := w.requests.SetStatus(ctx, requestID, model.RequestRejected, model.RequestPending, &adminID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			// A concurrent decision got there first.
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	// A guard failure is the normal case when other requests remain or
	// a concurrent approve booked the booth; only real errors are worth
	// a log line.
	if err := w.booths.Release(ctx, req.BoothID); err != nil &&
		!errors.Is(err, repository.ErrStateConflict) {
		w.logger.Printf("allocation: release of booth %d failed: %v", req.BoothID, err)
	}

	req.Status = model.RequestRejected
	req.DecidedBy = &adminID
	return req, nil
}
