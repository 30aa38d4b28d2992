package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeatID identifies a seat by its grid position inside a hall. Seats are not
// standalone entities; they only exist relative to a screening's hall.
type SeatID struct {
	Row    int `json:"row"`
	Number int `json:"number"`
}

type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatHeld      SeatState = "held"
	SeatBooked    SeatState = "booked"
)

// SeatStatus describes the current state of a single seat for a screening.
// A seat is held by at most one hold or booked by at most one reservation
// at any instant.
type SeatStatus struct {
	State         SeatState
	HoldID        uuid.UUID
	ReservationID uuid.UUID
	ExpiresAt     time.Time
}

func Available() SeatStatus {
	return SeatStatus{State: SeatAvailable}
}
