package app

import (
	"errors"
	"net/http"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

func (app *application) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	hold, ok := app.requestHold(w, r)
	if !ok {
		return
	}

	var req api.SubmitPaymentRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	buyer := domain.BuyerInfo{
		FirstName: req.Buyer.FirstName,
		LastName:  req.Buyer.LastName,
		Email:     req.Buyer.Email,
		Phone:     req.Buyer.Phone,
	}

	tickets := make([]domain.SeatTicket, len(req.Tickets))
	for i, ticket := range req.Tickets {
		tickets[i] = domain.SeatTicket{
			Seat: domain.SeatID{Row: ticket.Row, Number: ticket.Number},
			Type: domain.TicketType(ticket.Type),
		}
	}

	method := domain.PaymentMethod{
		Kind:       req.Method.Kind,
		CardNumber: req.Method.CardNumber,
		CardHolder: req.Method.CardHolder,
	}

	reservation, err := app.orchestrator.SubmitPayment(r.Context(), hold.ID, buyer, tickets, method)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldExpired):
			app.holdExpiredResponse(w, r)
		case errors.Is(err, domain.ErrInvalidHoldState):
			app.invalidHoldStateResponse(w, r)
		case errors.Is(err, domain.ErrPaymentDeclined):
			app.paymentDeclinedResponse(w, r)
		case errors.Is(err, domain.ErrTicketSeatMismatch),
			errors.Is(err, domain.ErrInvalidTicketType):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toReservationResponse(reservation)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservationResponse(reservation *domain.Reservation) api.ReservationResponse {
	seats := make([]api.ReservationSeat, len(reservation.Seats))
	for i, seat := range reservation.Seats {
		seats[i] = api.ReservationSeat{
			Row:    seat.Seat.Row,
			Number: seat.Seat.Number,
			Type:   string(seat.TicketType),
			Price:  seat.Price,
		}
	}

	return api.ReservationResponse{
		Id:            reservation.ID.String(),
		ScreeningId:   reservation.ScreeningID,
		Seats:         seats,
		Total:         reservation.Total,
		Currency:      reservation.Currency,
		PaymentStatus: string(reservation.PaymentStatus),
		CreatedAt:     reservation.CreatedAt,
	}
}
