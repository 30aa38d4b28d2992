package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/internal/clock"
	"github.com/kinoteka/cinema-reservation/internal/domain"
	"github.com/shopspring/decimal"
)

// Ledger is the durable record of confirmed reservations. Entries are only
// ever created from a confirmed hold; after that the sole permitted change
// is the Pending -> Paid payment transition.
type Ledger struct {
	repo  domain.ReservationRepository
	clock clock.Clock
}

func NewLedger(repo domain.ReservationRepository, clk clock.Clock) *Ledger {
	return &Ledger{
		repo:  repo,
		clock: clk,
	}
}

// Record persists a new reservation derived from a confirmed hold with a
// Pending payment status.
func (l *Ledger) Record(
	ctx context.Context,
	hold domain.Hold,
	reservationID uuid.UUID,
	buyer domain.BuyerInfo,
	tickets []domain.SeatTicket,
	total decimal.Decimal) (*domain.Reservation, error) {

	seats := make([]domain.ReservationSeat, len(tickets))

	for i, ticket := range tickets {
		price, err := domain.TicketPrice(ticket.Type)
		if err != nil {
			return nil, err
		}

		seats[i] = domain.ReservationSeat{
			Seat:       ticket.Seat,
			TicketType: ticket.Type,
			Price:      price,
		}
	}

	reservation := &domain.Reservation{
		ID:            reservationID,
		HoldID:        hold.ID,
		ScreeningID:   hold.ScreeningID,
		Buyer:         buyer,
		Seats:         seats,
		Total:         total,
		Currency:      domain.Currency,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     l.clock.Now(),
	}

	err := l.repo.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// MarkPaid applies the one-way payment transition; repeat calls are no-ops.
func (l *Ledger) MarkPaid(ctx context.Context, reservationID uuid.UUID) error {
	return l.repo.MarkPaid(ctx, reservationID)
}

func (l *Ledger) Get(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return l.repo.GetById(ctx, reservationID)
}
