package domain

import (
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldActive    HoldStatus = "active"
	HoldConfirmed HoldStatus = "confirmed"
	HoldReleased  HoldStatus = "released"
	HoldExpired   HoldStatus = "expired"
)

// Terminal reports whether no further transition is valid out of the status.
func (s HoldStatus) Terminal() bool {
	return s != HoldActive
}

// Hold is a time-boxed exclusive claim on a set of seats pending payment.
// ExpiresAt is always CreatedAt plus the configured TTL; holds are never
// extended.
type Hold struct {
	ID            uuid.UUID
	ScreeningID   int
	Seats         []SeatID
	BuyerToken    string
	Status        HoldStatus
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ReservationID uuid.UUID
}

func (h Hold) ExpiredAt(now time.Time) bool {
	return now.After(h.ExpiresAt)
}
