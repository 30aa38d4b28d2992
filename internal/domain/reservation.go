package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// BuyerInfo is the contact data collected on the payment form. There are no
// user accounts; the buyer is identified by an opaque session token.
type BuyerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type ReservationSeat struct {
	Seat       SeatID
	TicketType TicketType
	Price      decimal.Decimal
}

// Reservation is the durable record of a confirmed hold. It is immutable
// after creation except for the one-way Pending -> Paid transition.
type Reservation struct {
	ID            uuid.UUID
	HoldID        uuid.UUID
	ScreeningID   int
	Buyer         BuyerInfo
	Seats         []ReservationSeat
	Total         decimal.Decimal
	Currency      string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	PaidAt        *time.Time
}

// BookedSeat is a projection used to rebuild the in-memory seat map on
// startup.
type BookedSeat struct {
	ReservationID uuid.UUID
	ScreeningID   int
	Seat          SeatID
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetById(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// MarkPaid performs the Pending -> Paid transition. It is an idempotent
	// no-op for reservations that are already paid and returns
	// ErrRecordNotFound for unknown identifiers.
	MarkPaid(ctx context.Context, id uuid.UUID) error

	GetBookedSeatsByScreening(ctx context.Context, screeningID int) ([]BookedSeat, error)
}
