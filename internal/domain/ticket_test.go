package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTicketPrice(t *testing.T) {
	tests := []struct {
		name       string
		ticketType TicketType
		wantPrice  string
		wantErr    error
	}{
		{
			name:       "normal ticket costs 25",
			ticketType: TicketNormal,
			wantPrice:  "25",
		},
		{
			name:       "reduced ticket costs 18",
			ticketType: TicketReduced,
			wantPrice:  "18",
		},
		{
			name:       "unknown ticket type is rejected",
			ticketType: TicketType("vip"),
			wantErr:    ErrInvalidTicketType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := TicketPrice(tt.ticketType)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("TicketPrice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("TicketPrice() unexpected error: %v", err)
			}

			if want := decimal.RequireFromString(tt.wantPrice); !price.Equal(want) {
				t.Errorf("TicketPrice() = %s, want %s", price, want)
			}
		})
	}
}

func TestTotalPrice(t *testing.T) {
	tickets := []SeatTicket{
		{Seat: SeatID{Row: 0, Number: 0}, Type: TicketNormal},
		{Seat: SeatID{Row: 0, Number: 1}, Type: TicketNormal},
		{Seat: SeatID{Row: 0, Number: 2}, Type: TicketReduced},
	}

	total, err := TotalPrice(tickets)
	if err != nil {
		t.Fatalf("TotalPrice() unexpected error: %v", err)
	}

	if want := decimal.NewFromInt(68); !total.Equal(want) {
		t.Errorf("TotalPrice() = %s, want %s", total, want)
	}
}

func TestTotalPriceUnknownType(t *testing.T) {
	tickets := []SeatTicket{
		{Seat: SeatID{Row: 0, Number: 0}, Type: TicketNormal},
		{Seat: SeatID{Row: 0, Number: 1}, Type: TicketType("student")},
	}

	_, err := TotalPrice(tickets)
	if !errors.Is(err, ErrInvalidTicketType) {
		t.Fatalf("TotalPrice() error = %v, want %v", err, ErrInvalidTicketType)
	}
}
