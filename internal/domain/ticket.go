package domain

import "github.com/shopspring/decimal"

type TicketType string

const (
	TicketNormal  TicketType = "normal"
	TicketReduced TicketType = "reduced"
)

// Currency is fixed; multi-currency support is out of scope.
const Currency = "PLN"

var ticketPrices = map[TicketType]decimal.Decimal{
	TicketNormal:  decimal.NewFromInt(25),
	TicketReduced: decimal.NewFromInt(18),
}

// SeatTicket pairs a held seat with the ticket type chosen for it.
type SeatTicket struct {
	Seat SeatID
	Type TicketType
}

func TicketPrice(t TicketType) (decimal.Decimal, error) {
	price, ok := ticketPrices[t]
	if !ok {
		return decimal.Zero, ErrInvalidTicketType
	}

	return price, nil
}

// TotalPrice sums the per-seat ticket prices. It fails on the first unknown
// ticket type and has no other failure modes.
func TotalPrice(tickets []SeatTicket) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, ticket := range tickets {
		price, err := TicketPrice(ticket.Type)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(price)
	}

	return total, nil
}
