package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/cinema-reservation/internal/clock"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

var testBase = time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC)

func newTestSeatMap(t *testing.T) (*SeatMap, *clock.Fixed) {
	t.Helper()

	clk := clock.NewFixed(testBase)
	sm := NewSeatMap(clk)
	sm.Register(1, domain.Hall{ID: 1, Name: "Hall A", Rows: 8, SeatsPerRow: 10})

	return sm, clk
}

func seat(row, number int) domain.SeatID {
	return domain.SeatID{Row: row, Number: number}
}

func TestTryReserveIsAllOrNothing(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	holdA := uuid.New()
	conflicts, err := sm.TryReserve(1, []domain.SeatID{seat(0, 0), seat(0, 1)}, holdA, expiresAt)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	holdB := uuid.New()
	conflicts, err = sm.TryReserve(1, []domain.SeatID{seat(0, 1), seat(1, 1)}, holdB, expiresAt)
	require.ErrorIs(t, err, domain.ErrSeatConflict)
	assert.Equal(t, []domain.SeatID{seat(0, 1)}, conflicts)

	// The non-conflicting seat of the failed request must stay available.
	statuses, err := sm.Status(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatAvailable, statuses[seat(1, 1)].State)
	assert.Equal(t, domain.SeatHeld, statuses[seat(0, 0)].State)
}

func TestTryReserveRejectsOutOfBoundsSeats(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	tests := []struct {
		name  string
		seats []domain.SeatID
	}{
		{name: "row too large", seats: []domain.SeatID{seat(8, 0)}},
		{name: "number too large", seats: []domain.SeatID{seat(0, 10)}},
		{name: "negative row", seats: []domain.SeatID{seat(-1, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sm.TryReserve(1, tt.seats, uuid.New(), expiresAt)
			require.ErrorIs(t, err, domain.ErrSeatOutOfBounds)
		})
	}
}

func TestTryReserveRejectsDuplicateSeats(t *testing.T) {
	sm, _ := newTestSeatMap(t)

	_, err := sm.TryReserve(1, []domain.SeatID{seat(2, 2), seat(2, 2)}, uuid.New(), testBase.Add(time.Minute))
	require.Error(t, err)
}

func TestTryReserveUnknownScreening(t *testing.T) {
	sm, _ := newTestSeatMap(t)

	_, err := sm.TryReserve(99, []domain.SeatID{seat(0, 0)}, uuid.New(), testBase.Add(time.Minute))
	require.ErrorIs(t, err, domain.ErrScreeningNotFound)
}

func TestReleaseIsIdempotent(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	holdID := uuid.New()
	_, err := sm.TryReserve(1, []domain.SeatID{seat(3, 3)}, holdID, expiresAt)
	require.NoError(t, err)

	require.NoError(t, sm.Release(1, holdID))
	require.NoError(t, sm.Release(1, holdID))

	statuses, err := sm.Status(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatAvailable, statuses[seat(3, 3)].State)
}

func TestReleaseDoesNotTouchForeignSeats(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	holdA, holdB := uuid.New(), uuid.New()

	_, err := sm.TryReserve(1, []domain.SeatID{seat(0, 0)}, holdA, expiresAt)
	require.NoError(t, err)
	_, err = sm.TryReserve(1, []domain.SeatID{seat(0, 1)}, holdB, expiresAt)
	require.NoError(t, err)

	require.NoError(t, sm.Release(1, holdA))

	statuses, err := sm.Status(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatHeld, statuses[seat(0, 1)].State)
}

func TestConfirmMarksSeatsBooked(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	holdID := uuid.New()
	_, err := sm.TryReserve(1, []domain.SeatID{seat(5, 5), seat(5, 6)}, holdID, expiresAt)
	require.NoError(t, err)

	reservationID := uuid.New()
	require.NoError(t, sm.Confirm(1, holdID, reservationID))

	statuses, err := sm.Status(1)
	require.NoError(t, err)

	for _, s := range []domain.SeatID{seat(5, 5), seat(5, 6)} {
		assert.Equal(t, domain.SeatBooked, statuses[s].State)
		assert.Equal(t, reservationID, statuses[s].ReservationID)
	}
}

func TestConfirmUnknownHold(t *testing.T) {
	sm, _ := newTestSeatMap(t)

	err := sm.Confirm(1, uuid.New(), uuid.New())
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestLapsedHoldFreesSeats(t *testing.T) {
	sm, clk := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	holdA := uuid.New()
	_, err := sm.TryReserve(1, []domain.SeatID{seat(0, 0)}, holdA, expiresAt)
	require.NoError(t, err)

	clk.Advance(3*time.Minute + time.Second)

	statuses, err := sm.Status(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatAvailable, statuses[seat(0, 0)].State)

	// Another buyer can take the seat straight away.
	holdB := uuid.New()
	conflicts, err := sm.TryReserve(1, []domain.SeatID{seat(0, 0)}, holdB, clk.Now().Add(3*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestConcurrentReservesForSameSeat(t *testing.T) {
	sm, _ := newTestSeatMap(t)
	expiresAt := testBase.Add(3 * time.Minute)

	const attempts = 50

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := sm.TryReserve(1, []domain.SeatID{seat(4, 4)}, uuid.New(), expiresAt)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, wins, "exactly one concurrent request may win the seat")
}
