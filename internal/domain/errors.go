package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrEditConflict       = errors.New("edit conflict")
	ErrSeatConflict       = errors.New("seat(s) are not available")
	ErrSeatOutOfBounds    = errors.New("seat does not exist in this hall")
	ErrHoldExpired        = errors.New("hold has expired, please select your seats again")
	ErrInvalidHoldState   = errors.New("hold is no longer active")
	ErrPaymentDeclined    = errors.New("payment was declined")
	ErrInvalidTicketType  = errors.New("unknown ticket type")
	ErrTicketSeatMismatch = errors.New("tickets do not match the held seats")
	ErrScreeningNotFound  = errors.New("screening not found")
)
