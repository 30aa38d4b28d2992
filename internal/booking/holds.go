package booking

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/internal/clock"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

const (
	// DefaultHoldTTL bounds how long a buyer can sit on selected seats
	// before they are reclaimed.
	DefaultHoldTTL = 3 * time.Minute

	// DefaultSweepInterval is how often the background sweep reclaims
	// expired holds.
	DefaultSweepInterval = 10 * time.Second

	// terminal holds are kept around for a while so that late requests get
	// a precise InvalidState answer instead of a generic not-found.
	holdRetention = time.Hour
)

// HoldManager grants time-boxed exclusive holds on seats and drives the hold
// state machine: Active -> Confirmed | Released | Expired. Terminal states
// never transition again. Seat locking itself is delegated to the SeatMap;
// the manager's mutex serializes hold transitions with the expiry sweep.
type HoldManager struct {
	seatMap *SeatMap
	clock   clock.Clock
	ttl     time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	holds  map[uuid.UUID]*domain.Hold
	expiry expiryHeap
}

type HoldManagerOption func(*HoldManager)

// WithHoldTTL overrides the default TTL for new holds.
func WithHoldTTL(d time.Duration) HoldManagerOption {
	return func(m *HoldManager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func NewHoldManager(seatMap *SeatMap, clk clock.Clock, logger *slog.Logger, opts ...HoldManagerOption) *HoldManager {
	m := &HoldManager{
		seatMap: seatMap,
		clock:   clk,
		ttl:     DefaultHoldTTL,
		logger:  logger,
		holds:   make(map[uuid.UUID]*domain.Hold),
	}

	for _, opt := range opts {
		opt(m)
	}

	heap.Init(&m.expiry)

	return m
}

func (m *HoldManager) TTL() time.Duration {
	return m.ttl
}

// Create acquires all requested seats atomically and returns the new hold.
// On conflict no hold is created and the conflicting seats are returned
// alongside domain.ErrSeatConflict.
func (m *HoldManager) Create(screeningID int, seats []domain.SeatID, buyerToken string) (domain.Hold, []domain.SeatID, error) {
	now := m.clock.Now()
	holdID := uuid.New()
	expiresAt := now.Add(m.ttl)

	conflicts, err := m.seatMap.TryReserve(screeningID, seats, holdID, expiresAt)
	if err != nil {
		return domain.Hold{}, conflicts, err
	}

	hold := &domain.Hold{
		ID:          holdID,
		ScreeningID: screeningID,
		Seats:       append([]domain.SeatID(nil), seats...),
		BuyerToken:  buyerToken,
		Status:      domain.HoldActive,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	m.mu.Lock()
	m.holds[holdID] = hold
	heap.Push(&m.expiry, expiryEntry{at: expiresAt, holdID: holdID})
	m.mu.Unlock()

	return *hold, nil, nil
}

// Get returns a snapshot of the hold, lazily expiring it first if its TTL
// already lapsed. Together with the background sweep this guarantees no seat
// is ever held past its expiry on the request path.
func (m *HoldManager) Get(holdID uuid.UUID) (domain.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hold, ok := m.holds[holdID]
	if !ok {
		return domain.Hold{}, domain.ErrRecordNotFound
	}

	m.expireIfDue(hold)

	return *hold, nil
}

// Confirm transitions an active hold to Confirmed, marking its seats as
// booked under reservationID. An already-lapsed hold is expired on the spot
// and reported as domain.ErrHoldExpired; terminal holds report
// domain.ErrInvalidHoldState.
func (m *HoldManager) Confirm(holdID, reservationID uuid.UUID) (domain.Hold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hold, ok := m.holds[holdID]
	if !ok {
		return domain.Hold{}, domain.ErrRecordNotFound
	}

	if m.expireIfDue(hold) || hold.Status == domain.HoldExpired {
		return domain.Hold{}, domain.ErrHoldExpired
	}

	if hold.Status.Terminal() {
		return domain.Hold{}, domain.ErrInvalidHoldState
	}

	err := m.seatMap.Confirm(hold.ScreeningID, holdID, reservationID)
	if err != nil {
		return domain.Hold{}, err
	}

	hold.Status = domain.HoldConfirmed
	hold.ReservationID = reservationID

	return *hold, nil
}

// abortConfirm rolls a just-confirmed hold back to Active because the
// ledger write failed. Seats return to Held with their original expiry, so
// the buyer keeps their claim until the TTL runs out.
func (m *HoldManager) abortConfirm(holdID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hold, ok := m.holds[holdID]
	if !ok || hold.Status != domain.HoldConfirmed {
		return
	}

	m.seatMap.revertConfirm(hold.ScreeningID, holdID, hold.ReservationID, hold.ExpiresAt)

	hold.Status = domain.HoldActive
	hold.ReservationID = uuid.Nil
}

// Cancel releases an active hold and its seats. Cancelling a terminal hold
// is a client logic error and reports domain.ErrInvalidHoldState.
func (m *HoldManager) Cancel(holdID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hold, ok := m.holds[holdID]
	if !ok {
		return domain.ErrRecordNotFound
	}

	if m.expireIfDue(hold) || hold.Status.Terminal() {
		return domain.ErrInvalidHoldState
	}

	if err := m.seatMap.Release(hold.ScreeningID, holdID); err != nil {
		return err
	}

	hold.Status = domain.HoldReleased

	return nil
}

// SweepExpired expires every active hold whose TTL has lapsed, releasing its
// seats, and prunes terminal holds past the retention window. It returns the
// number of holds expired. The sweep reclaims inventory even when the client
// never cancels, e.g. a closed browser tab.
func (m *HoldManager) SweepExpired() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0

	for m.expiry.Len() > 0 {
		next := m.expiry[0]
		if next.at.After(now) {
			break
		}

		heap.Pop(&m.expiry)

		hold, ok := m.holds[next.holdID]
		if !ok {
			continue
		}

		if hold.Status == domain.HoldActive {
			m.expireLocked(hold)
			expired++
		}

		if now.Sub(hold.ExpiresAt) > holdRetention {
			delete(m.holds, hold.ID)
		} else {
			// revisit once the retention window has passed
			heap.Push(&m.expiry, expiryEntry{at: hold.ExpiresAt.Add(holdRetention), holdID: hold.ID})
		}
	}

	return expired
}

// RunSweeper periodically sweeps expired holds until ctx is cancelled.
func (m *HoldManager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			if n := m.SweepExpired(); n > 0 {
				m.logger.Info("expired stale holds", "count", n)
			}
		}
	}
}

// expireIfDue expires the hold when it is Active past its TTL. Caller must
// hold m.mu.
func (m *HoldManager) expireIfDue(hold *domain.Hold) bool {
	if hold.Status != domain.HoldActive || !hold.ExpiredAt(m.clock.Now()) {
		return false
	}

	m.expireLocked(hold)

	return true
}

func (m *HoldManager) expireLocked(hold *domain.Hold) {
	if err := m.seatMap.Release(hold.ScreeningID, hold.ID); err != nil {
		m.logger.Error("failed to release seats of expired hold", "hold_id", hold.ID, "error", err)
	}

	hold.Status = domain.HoldExpired
}

type expiryEntry struct {
	at     time.Time
	holdID uuid.UUID
}

// expiryHeap is a min-heap keyed by expiry time so the sweep only touches
// due holds instead of scanning the whole table.
type expiryHeap []expiryEntry

func (h expiryHeap) Len() int           { return len(h) }
func (h expiryHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h expiryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x any)        { *h = append(*h, x.(expiryEntry)) }

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]

	return entry
}
