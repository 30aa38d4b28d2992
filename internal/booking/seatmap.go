package booking

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/internal/clock"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

// SeatMap is the authoritative, in-memory view of seat status per screening.
// Every mutation for a screening runs under that screening's own mutex, so a
// check-then-mark sequence is atomic and two concurrent requests for the same
// seat can never both succeed. This is the single-process locking discipline;
// the Postgres ledger additionally carries a unique seat index as the
// fail-closed backstop.
type SeatMap struct {
	mu         sync.RWMutex
	screenings map[int]*screeningSeats

	clock clock.Clock
}

type screeningSeats struct {
	mu   sync.Mutex
	hall domain.Hall

	// seats only records non-available seats; anything absent is Available.
	seats map[domain.SeatID]domain.SeatStatus
}

func NewSeatMap(clk clock.Clock) *SeatMap {
	return &SeatMap{
		screenings: make(map[int]*screeningSeats),
		clock:      clk,
	}
}

// Register makes a screening's hall geometry known to the seat map. It is
// idempotent; re-registering an existing screening keeps its current state.
func (sm *SeatMap) Register(screeningID int, hall domain.Hall) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.screenings[screeningID]; ok {
		return
	}

	sm.screenings[screeningID] = &screeningSeats{
		hall:  hall,
		seats: make(map[domain.SeatID]domain.SeatStatus),
	}
}

func (sm *SeatMap) Registered(screeningID int) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	_, ok := sm.screenings[screeningID]

	return ok
}

func (sm *SeatMap) screening(screeningID int) (*screeningSeats, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ss, ok := sm.screenings[screeningID]
	if !ok {
		return nil, domain.ErrScreeningNotFound
	}

	return ss, nil
}

// Status returns the status of every seat in the screening's hall. Seats
// without a recorded status are Available; held seats whose TTL has lapsed
// are reported as Available as well, without waiting for the sweep.
func (sm *SeatMap) Status(screeningID int) (map[domain.SeatID]domain.SeatStatus, error) {
	ss, err := sm.screening(screeningID)
	if err != nil {
		return nil, err
	}

	now := sm.clock.Now()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	statuses := make(map[domain.SeatID]domain.SeatStatus, ss.hall.Capacity())

	for row := 0; row < ss.hall.Rows; row++ {
		for number := 0; number < ss.hall.SeatsPerRow; number++ {
			seat := domain.SeatID{Row: row, Number: number}

			status, ok := ss.seats[seat]
			if !ok || lapsed(status, now) {
				status = domain.Available()
			}

			statuses[seat] = status
		}
	}

	return statuses, nil
}

// TryReserve atomically checks that every requested seat is available and
// marks all of them as held by holdID. If any seat is unavailable, no state
// changes and the conflicting subset is returned alongside ErrSeatConflict.
// Partial holds never occur.
func (sm *SeatMap) TryReserve(
	screeningID int,
	seats []domain.SeatID,
	holdID uuid.UUID,
	expiresAt time.Time) ([]domain.SeatID, error) {

	ss, err := sm.screening(screeningID)
	if err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		return nil, fmt.Errorf("no seats requested")
	}

	requested := make(map[domain.SeatID]bool, len(seats))
	for _, seat := range seats {
		if !ss.hall.Contains(seat) {
			return nil, domain.ErrSeatOutOfBounds
		}
		if requested[seat] {
			return nil, fmt.Errorf("seat (%d,%d) requested twice", seat.Row, seat.Number)
		}
		requested[seat] = true
	}

	now := sm.clock.Now()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	var conflicts []domain.SeatID

	for _, seat := range seats {
		status, ok := ss.seats[seat]
		if ok && !lapsed(status, now) {
			conflicts = append(conflicts, seat)
		}
	}

	if len(conflicts) > 0 {
		return conflicts, domain.ErrSeatConflict
	}

	for _, seat := range seats {
		ss.seats[seat] = domain.SeatStatus{
			State:     domain.SeatHeld,
			HoldID:    holdID,
			ExpiresAt: expiresAt,
		}
	}

	return nil, nil
}

// Release returns all seats held by holdID to Available. It is idempotent
// and only touches seats currently held by that hold; booked seats and seats
// claimed by other holds are left alone.
func (sm *SeatMap) Release(screeningID int, holdID uuid.UUID) error {
	ss, err := sm.screening(screeningID)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for seat, status := range ss.seats {
		if status.State == domain.SeatHeld && status.HoldID == holdID {
			delete(ss.seats, seat)
		}
	}

	return nil
}

// Confirm transitions every seat held by holdID to Booked under
// reservationID. It fails with ErrRecordNotFound when the hold no longer
// owns any seats (already released, expired or confirmed elsewhere).
func (sm *SeatMap) Confirm(screeningID int, holdID, reservationID uuid.UUID) error {
	ss, err := sm.screening(screeningID)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	var owned []domain.SeatID

	for seat, status := range ss.seats {
		if status.State == domain.SeatHeld && status.HoldID == holdID {
			owned = append(owned, seat)
		}
	}

	if len(owned) == 0 {
		return domain.ErrRecordNotFound
	}

	for _, seat := range owned {
		ss.seats[seat] = domain.SeatStatus{
			State:         domain.SeatBooked,
			ReservationID: reservationID,
		}
	}

	return nil
}

// MarkBooked records already-reserved seats, bypassing the hold lifecycle.
// Used only to rebuild state from the ledger on startup.
func (sm *SeatMap) MarkBooked(screeningID int, seats []domain.SeatID, reservationID uuid.UUID) error {
	ss, err := sm.screening(screeningID)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for _, seat := range seats {
		ss.seats[seat] = domain.SeatStatus{
			State:         domain.SeatBooked,
			ReservationID: reservationID,
		}
	}

	return nil
}

// revertConfirm undoes a Confirm whose ledger write failed: seats booked
// under reservationID go back to Held by holdID with their original expiry.
// The operation must leave seats in their prior state rather than risk a
// double-booking.
func (sm *SeatMap) revertConfirm(screeningID int, holdID, reservationID uuid.UUID, expiresAt time.Time) {
	ss, err := sm.screening(screeningID)
	if err != nil {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for seat, status := range ss.seats {
		if status.State == domain.SeatBooked && status.ReservationID == reservationID {
			ss.seats[seat] = domain.SeatStatus{
				State:     domain.SeatHeld,
				HoldID:    holdID,
				ExpiresAt: expiresAt,
			}
		}
	}
}

func lapsed(status domain.SeatStatus, now time.Time) bool {
	return status.State == domain.SeatHeld && now.After(status.ExpiresAt)
}
