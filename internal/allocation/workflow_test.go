package allocation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
)

// fakeLedger is an in-memory booth ledger with the same conditional
// semantics as the MySQL repository: every guarded update is applied
// atomically under one mutex, so the fake is linearizable per booth.
// Release additionally locks the request store, mirroring the single
// UPDATE with its NOT EXISTS subquery. beforeRelease, when set, runs
// outside both locks before the release is attempted so tests can
// interleave a full submission into the reject path.
type fakeLedger struct {
	mu            sync.Mutex
	booths        map[uint64]*model.Booth
	store         *fakeStore
	beforeRelease func()
}

func newFakeLedger(store *fakeStore, booths ...*model.Booth) *fakeLedger {
	f := &fakeLedger{booths: make(map[uint64]*model.Booth), store: store}
	for _, b := range booths {
		f.booths[b.ID] = b
	}
	return f
}

func (f *fakeLedger) GetByID(_ context.Context, id uint64) (*model.Booth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.booths[id]
	if !ok {
		return nil, repository.ErrBoothNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeLedger) SetState(_ context.Context, id uint64, next, expected model.BoothState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.booths[id]
	if !ok {
		return repository.ErrBoothNotFound
	}
	if b.State != expected {
		return repository.ErrStateConflict
	}
	b.State = next
	if next != model.BoothBooked {
		b.AssignedCompanyID = nil
	}
	return nil
}

func (f *fakeLedger) Book(_ context.Context, id, companyID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.booths[id]
	if !ok {
		return repository.ErrBoothNotFound
	}
	if b.State != model.BoothPending {
		return repository.ErrStateConflict
	}
	b.State = model.BoothBooked
	b.AssignedCompanyID = &companyID
	return nil
}

func (f *fakeLedger) Release(_ context.Context, id uint64) error {
	if f.beforeRelease != nil {
		hook := f.beforeRelease
		f.beforeRelease = nil
		hook()
	}
	// Store first, then ledger, so the emptiness check and the state
	// flip are one atomic step. No other path locks both.
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.booths[id]
	if !ok {
		return repository.ErrBoothNotFound
	}
	if b.State != model.BoothPending {
		return repository.ErrStateConflict
	}
	for _, r := range f.store.requests {
		if r.BoothID == id && r.Status != model.RequestRejected {
			return repository.ErrStateConflict
		}
	}
	b.State = model.BoothAvailable
	b.AssignedCompanyID = nil
	return nil
}

// fakeStore is the in-memory request store. beforeSetStatus and
// beforeCreate, when set, run inside the lock just before the write so
// tests can simulate a concurrent writer landing first. Both hooks
// clear themselves after firing once.
type fakeStore struct {
	mu              sync.Mutex
	nextID          uint64
	requests        map[uint64]*model.Request
	beforeSetStatus func(s *fakeStore, id uint64)
	beforeCreate    func(s *fakeStore)
}

func newFakeStore(reqs ...*model.Request) *fakeStore {
	f := &fakeStore{requests: make(map[uint64]*model.Request)}
	for _, r := range reqs {
		f.requests[r.ID] = r
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
	}
	return f
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, req *model.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beforeCreate != nil {
		hook := f.beforeCreate
		f.beforeCreate = nil
		hook(f)
	}
	f.nextID++
	req.ID = f.nextID
	req.Status = model.RequestPending
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeStore) SetStatus(_ context.Context, id uint64, next, expected model.RequestStatus, decidedBy *uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.beforeSetStatus != nil {
		hook := f.beforeSetStatus
		f.beforeSetStatus = nil
		hook(f, id)
	}
	r, ok := f.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	if r.Status != expected {
		return repository.ErrStateConflict
	}
	r.Status = next
	r.DecidedBy = decidedBy
	return nil
}

func (f *fakeStore) RejectSiblings(_ context.Context, boothID, exceptID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.requests {
		if r.BoothID == boothID && r.ID != exceptID && r.Status == model.RequestPending {
			r.Status = model.RequestRejected
			r.DecidedBy = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) HasActive(_ context.Context, boothID, companyID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.BoothID == boothID && r.CompanyID == companyID && r.Status != model.RequestRejected {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) HasActiveOlderThan(_ context.Context, boothID, companyID, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.BoothID == boothID && r.CompanyID == companyID && r.Status != model.RequestRejected && r.ID < id {
			return true, nil
		}
	}
	return false, nil
}

// countActive tallies the pending and accepted requests on a booth.
func countActive(store *fakeStore, boothID uint64) (pending, accepted int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, r := range store.requests {
		if r.BoothID != boothID {
			continue
		}
		switch r.Status {
		case model.RequestPending:
			pending++
		case model.RequestAccepted:
			accepted++
		}
	}
	return pending, accepted
}

// assertInvariants checks the two core invariants: at most one
// accepted request per booth, and the booth state being derivable from
// the requests referencing it.
func assertInvariants(t *testing.T, ledger *fakeLedger, store *fakeStore) {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	for id, b := range ledger.booths {
		var pending, accepted int
		for _, r := range store.requests {
			if r.BoothID != id {
				continue
			}
			switch r.Status {
			case model.RequestPending:
				pending++
			case model.RequestAccepted:
				accepted++
			}
		}
		assert.LessOrEqual(t, accepted, 1, "booth %d has %d accepted requests", id, accepted)
		switch b.State {
		case model.BoothBooked:
			assert.Equal(t, 1, accepted, "booth %d BOOKED without exactly one accepted request", id)
		case model.BoothPending:
			assert.Zero(t, accepted, "booth %d PENDING with an accepted request", id)
			assert.Positive(t, pending, "booth %d PENDING with no pending request", id)
		case model.BoothAvailable:
			assert.Zero(t, accepted, "booth %d AVAILABLE with an accepted request", id)
			assert.Zero(t, pending, "booth %d AVAILABLE with a pending request", id)
		}
	}
}

func pendingRequest(id, boothID, companyID uint64) *model.Request {
	return &model.Request{
		ID:          id,
		BoothID:     boothID,
		CompanyID:   companyID,
		SubmitterID: companyID + 100,
		ProductName: "exhibit",
		Status:      model.RequestPending,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and moves booth", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, ExpoID: 5, State: model.BoothAvailable})
		w := New(ledger, store, nil)

		req, err := w.Submit(ctx, SubmitInput{ExpoID: 5, BoothID: 1, CompanyID: 7, SubmitterID: 9, ProductName: "drones"})
		require.NoError(t, err)
		assert.Equal(t, model.RequestPending, req.Status)

		booth, err := ledger.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.BoothPending, booth.State)
		assertInvariants(t, ledger, store)
	})

	t.Run("second company on same booth keeps booth pending", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, ExpoID: 5, State: model.BoothAvailable})
		w := New(ledger, store, nil)

		_, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		require.NoError(t, err)
		_, err = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 8, SubmitterID: 10})
		require.NoError(t, err)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothPending, booth.State)
		assertInvariants(t, ledger, store)
	})

	t.Run("unknown booth", func(t *testing.T) {
		store := newFakeStore()
		w := New(newFakeLedger(store), store, nil)
		_, err := w.Submit(ctx, SubmitInput{BoothID: 42, CompanyID: 7})
		assert.ErrorIs(t, err, ErrInvalidBooth)
	})

	t.Run("booth of a different expo", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, ExpoID: 5, State: model.BoothAvailable})
		w := New(ledger, store, nil)
		_, err := w.Submit(ctx, SubmitInput{ExpoID: 6, BoothID: 1, CompanyID: 7})
		assert.ErrorIs(t, err, ErrInvalidBooth)
	})

	t.Run("booked booth refused up front", func(t *testing.T) {
		cid := uint64(3)
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothBooked, AssignedCompanyID: &cid})
		w := New(ledger, store, nil)

		_, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7})
		assert.ErrorIs(t, err, ErrBoothUnavailable)
		p, a := countActive(store, 1)
		assert.Zero(t, p+a, "no request must be queued against a booked booth")
	})

	t.Run("duplicate submission by same company", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothAvailable})
		w := New(ledger, store, nil)

		_, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		require.NoError(t, err)
		_, err = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("duplicate whose insert lands second rejects itself", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothAvailable})
		// The competing submission by the same company passes the
		// fast-path duplicate check at the same time we do, and its
		// insert lands just before ours.
		store.beforeCreate = func(s *fakeStore) {
			s.nextID++
			s.requests[s.nextID] = pendingRequest(s.nextID, 1, 7)
			ledger.mu.Lock()
			ledger.booths[1].State = model.BoothPending
			ledger.mu.Unlock()
		}
		w := New(ledger, store, nil)

		_, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		assert.ErrorIs(t, err, ErrDuplicateRequest)

		p, a := countActive(store, 1)
		assert.Equal(t, 1, p, "exactly one request of the racing pair may stay active")
		assert.Zero(t, a)
		assertInvariants(t, ledger, store)
	})

	t.Run("resubmission allowed after rejection", func(t *testing.T) {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothAvailable})
		w := New(ledger, store, nil)

		first, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		require.NoError(t, err)
		_, err = w.Reject(ctx, first.ID, 99)
		require.NoError(t, err)

		second, err := w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID, "resubmission must create a new request")
		assertInvariants(t, ledger, store)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("winner books booth and siblings are auto-rejected", func(t *testing.T) {
		r1 := pendingRequest(1, 1, 7)
		r2 := pendingRequest(2, 1, 8)
		store := newFakeStore(r1, r2)
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		got, err := w.Approve(ctx, 1, 99)
		require.NoError(t, err)
		assert.Equal(t, model.RequestAccepted, got.Status)
		require.NotNil(t, got.DecidedBy)
		assert.EqualValues(t, 99, *got.DecidedBy)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothBooked, booth.State)
		require.NotNil(t, booth.AssignedCompanyID)
		assert.EqualValues(t, 7, *booth.AssignedCompanyID)

		sibling, _ := store.GetByID(ctx, 2)
		assert.Equal(t, model.RequestRejected, sibling.Status)
		assert.Nil(t, sibling.DecidedBy, "auto-rejection must not record an administrator")
		assertInvariants(t, ledger, store)
	})

	t.Run("unknown request", func(t *testing.T) {
		store := newFakeStore()
		w := New(newFakeLedger(store), store, nil)
		_, err := w.Approve(ctx, 5, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		r := pendingRequest(1, 1, 7)
		r.Status = model.RequestRejected
		store := newFakeStore(r)
		w := New(newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothAvailable}), store, nil)
		_, err := w.Approve(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("booth already booked", func(t *testing.T) {
		cid := uint64(8)
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothBooked, AssignedCompanyID: &cid})
		w := New(ledger, store, nil)

		_, err := w.Approve(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrBoothUnavailable)
		// The request stays pending so the administrator can retry.
		r, _ := store.GetByID(ctx, 1)
		assert.Equal(t, model.RequestPending, r.Status)
	})

	t.Run("rolls booth back when the request decision races", func(t *testing.T) {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		// Simulate a concurrent decision landing between the booth
		// booking and the request status update.
		store.beforeSetStatus = func(s *fakeStore, id uint64) {
			s.requests[id].Status = model.RequestRejected
		}
		w := New(ledger, store, nil)

		_, err := w.Approve(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrConflict)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothPending, booth.State, "booth must be rolled back to PENDING")
		assert.Nil(t, booth.AssignedCompanyID)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("only pending request releases the booth", func(t *testing.T) {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		got, err := w.Reject(ctx, 1, 99)
		require.NoError(t, err)
		assert.Equal(t, model.RequestRejected, got.Status)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothAvailable, booth.State)
		assertInvariants(t, ledger, store)
	})

	t.Run("other pending request keeps booth pending", func(t *testing.T) {
		store := newFakeStore(pendingRequest(1, 1, 7), pendingRequest(2, 1, 8))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		_, err := w.Reject(ctx, 1, 99)
		require.NoError(t, err)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothPending, booth.State)
		assertInvariants(t, ledger, store)
	})

	t.Run("submission landing mid-reject keeps booth pending", func(t *testing.T) {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		// A second company submits after the reject has flipped the
		// request but before the booth release is attempted.
		var newReq *model.Request
		ledger.beforeRelease = func() {
			var err error
			newReq, err = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 8, SubmitterID: 10})
			require.NoError(t, err)
		}

		_, err := w.Reject(ctx, 1, 99)
		require.NoError(t, err)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothPending, booth.State,
			"release must not apply while a fresh request is pending")

		// The late submission must remain decidable.
		got, err := w.Approve(ctx, newReq.ID, 99)
		require.NoError(t, err)
		assert.Equal(t, model.RequestAccepted, got.Status)
		assertInvariants(t, ledger, store)
	})

	t.Run("second reject is already decided with no state change", func(t *testing.T) {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		_, err := w.Reject(ctx, 1, 99)
		require.NoError(t, err)
		_, err = w.Reject(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrAlreadyDecided)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothAvailable, booth.State)
		assertInvariants(t, ledger, store)
	})

	t.Run("unknown request", func(t *testing.T) {
		store := newFakeStore()
		w := New(newFakeLedger(store), store, nil)
		_, err := w.Reject(ctx, 5, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestConcurrentApprove races two approvals for different requests on
// the same pending booth: exactly one must win, the loser must see
// ErrBoothUnavailable or ErrConflict, and the booth must end BOOKED
// referencing the winner only.
func TestConcurrentApprove(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		store := newFakeStore(pendingRequest(1, 1, 7), pendingRequest(2, 1, 8))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); _, errs[0] = w.Approve(ctx, 1, 99) }()
		go func() { defer wg.Done(); _, errs[1] = w.Approve(ctx, 2, 99) }()
		wg.Wait()

		var wins, losses int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case isOneOf(err, ErrBoothUnavailable, ErrConflict, ErrAlreadyDecided):
				losses++
			default:
				t.Fatalf("unexpected approve error: %v", err)
			}
		}
		require.Equal(t, 1, wins, "exactly one approve must succeed")
		require.Equal(t, 1, losses)

		booth, err := ledger.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, model.BoothBooked, booth.State)
		assertInvariants(t, ledger, store)
	}
}

// TestConcurrentSubmitAndApprove races a fresh submission against the
// approval of an existing request on the same booth. Whatever the
// interleaving, no pending request may survive on a booked booth and
// the invariants must hold afterwards.
func TestConcurrentSubmitAndApprove(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		var submitErr, approveErr error
		go func() {
			defer wg.Done()
			_, submitErr = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 8, SubmitterID: 10})
		}()
		go func() {
			defer wg.Done()
			_, approveErr = w.Approve(ctx, 1, 99)
		}()
		wg.Wait()

		require.NoError(t, approveErr, "approval of a pending request on a pending booth must win")
		if submitErr != nil {
			assert.ErrorIs(t, submitErr, ErrBoothUnavailable)
		}

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothBooked, booth.State)
		// A submission that slipped in before the booking was either
		// auto-rejected as a sibling or rejected by the submit path.
		p, a := countActive(store, 1)
		assert.Zero(t, p, "no pending request may survive on a booked booth")
		assert.Equal(t, 1, a)
	}
}

// TestConcurrentSubmitAndReject races a fresh submission by a second
// company against the rejection of the only pending request. The
// booth must never end AVAILABLE while the new request is pending,
// whichever side wins the release guard.
func TestConcurrentSubmitAndReject(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		store := newFakeStore(pendingRequest(1, 1, 7))
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothPending})
		w := New(ledger, store, nil)

		var wg sync.WaitGroup
		wg.Add(2)
		var submitErr, rejectErr error
		var newReq *model.Request
		go func() {
			defer wg.Done()
			newReq, submitErr = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 8, SubmitterID: 10})
		}()
		go func() {
			defer wg.Done()
			_, rejectErr = w.Reject(ctx, 1, 99)
		}()
		wg.Wait()

		require.NoError(t, rejectErr)
		require.NoError(t, submitErr)

		booth, _ := ledger.GetByID(ctx, 1)
		assert.Equal(t, model.BoothPending, booth.State,
			"booth must track the surviving pending request")

		got, err := w.Approve(ctx, newReq.ID, 99)
		require.NoError(t, err, "the surviving request must stay decidable")
		assert.Equal(t, model.RequestAccepted, got.Status)
		assertInvariants(t, ledger, store)
	}
}

// TestConcurrentDuplicateSubmit races two submissions by the same
// company for the same booth: exactly one may create an active
// request, the other must report the duplicate.
func TestConcurrentDuplicateSubmit(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		store := newFakeStore()
		ledger := newFakeLedger(store, &model.Booth{ID: 1, State: model.BoothAvailable})
		w := New(ledger, store, nil)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		for g := 0; g < 2; g++ {
			go func(g int) {
				defer wg.Done()
				_, errs[g] = w.Submit(ctx, SubmitInput{BoothID: 1, CompanyID: 7, SubmitterID: 9})
			}(g)
		}
		wg.Wait()

		var wins, dups int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrDuplicateRequest):
				dups++
			default:
				t.Fatalf("unexpected submit error: %v", err)
			}
		}
		require.Equal(t, 1, wins, "exactly one of the racing submissions may survive")
		require.Equal(t, 1, dups)

		p, a := countActive(store, 1)
		assert.Equal(t, 1, p, "the booth must carry exactly one active request")
		assert.Zero(t, a)
		assertInvariants(t, ledger, store)
	}
}

// isOneOf reports whether err matches any of the targets.
func isOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
