// Package api defines the request and response bodies of the HTTP API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the generic error body for non-validation failures.
type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// SeatConflictResponse reports which of the requested seats caused a hold
// or payment attempt to fail.
type SeatConflictResponse struct {
	Message          string    `json:"message"`
	RequestId        string    `json:"requestId,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	ConflictingSeats []SeatRef `json:"conflictingSeats"`
}

type SeatRef struct {
	Row    int `json:"row" validate:"min=0"`
	Number int `json:"number" validate:"min=0"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title release_date -id -title -release_date"`
	Term     *string `validate:"omitempty,max=100"`
}

type MovieSummary struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	PosterUrl   string    `json:"posterUrl"`
	ReleaseDate time.Time `json:"releaseDate"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type MovieResponse struct {
	MovieSummary
	CreatedAt time.Time `json:"createdAt"`
}

type ScreeningResponse struct {
	Id         int       `json:"id"`
	MovieId    int       `json:"movieId"`
	MovieTitle string    `json:"movieTitle"`
	HallId     int       `json:"hallId"`
	HallName   string    `json:"hallName"`
	StartTime  time.Time `json:"startTime"`
}

type ScreeningListResponse struct {
	Screenings []ScreeningResponse `json:"screenings"`
}

type Seat struct {
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ScreeningId int       `json:"screeningId"`
	MovieTitle  string    `json:"movieTitle"`
	HallName    string    `json:"hallName"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seatsPerRow"`
	SeatRows    []SeatRow `json:"seatRows"`
}

type CreateHoldRequest struct {
	Seats []SeatRef `json:"seats" validate:"required,min=1,max=10,dive"`
}

type HoldResponse struct {
	HoldId      string    `json:"holdId"`
	ScreeningId int       `json:"screeningId"`
	Seats       []SeatRef `json:"seats"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expiresAt"`
	HoldTime    int       `json:"holdTime"`
}

type Buyer struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
}

type SeatTicket struct {
	Row    int    `json:"row" validate:"min=0"`
	Number int    `json:"number" validate:"min=0"`
	Type   string `json:"type" validate:"required,ticket_type"`
}

type PaymentMethod struct {
	Kind       string `json:"kind" validate:"required,oneof=card blik"`
	CardNumber string `json:"cardNumber" validate:"omitempty,len=16,numeric"`
	CardHolder string `json:"cardHolder" validate:"omitempty,max=100"`
}

type SubmitPaymentRequest struct {
	Buyer   Buyer         `json:"buyer" validate:"required"`
	Tickets []SeatTicket  `json:"tickets" validate:"required,min=1,max=10,dive"`
	Method  PaymentMethod `json:"method" validate:"required"`
}

type ReservationSeat struct {
	Row    int             `json:"row"`
	Number int             `json:"number"`
	Type   string          `json:"type"`
	Price  decimal.Decimal `json:"price"`
}

type ReservationResponse struct {
	Id            string            `json:"id"`
	ScreeningId   int               `json:"screeningId"`
	Seats         []ReservationSeat `json:"seats"`
	Total         decimal.Decimal   `json:"total"`
	Currency      string            `json:"currency"`
	PaymentStatus string            `json:"paymentStatus"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=2000"`
	Duration    int       `json:"duration" validate:"required,min=1,max=600"`
	PosterUrl   string    `json:"posterUrl" validate:"omitempty,url"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
}

type CreateHallRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Rows        int    `json:"rows" validate:"required,min=1,max=100"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,min=1,max=100"`
}

type HallResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seatsPerRow"`
	Capacity    int    `json:"capacity"`
}

type CreateScreeningRequest struct {
	MovieId   int       `json:"movieId" validate:"required,min=1"`
	HallId    int       `json:"hallId" validate:"required,min=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
}
