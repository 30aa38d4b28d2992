package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

func (app *application) CreateHold(w http.ResponseWriter, r *http.Request, screeningID int) {
	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	var req api.CreateHoldRequest

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

	seats := make([]domain.SeatID, len(req.Seats))
	for i, seat := range req.Seats {
		seats[i] = domain.SeatID{Row: seat.Row, Number: seat.Number}
	}

	hold, conflicts, err := app.orchestrator.SelectSeats(r.Context(), screeningID, seats, app.buyerToken(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatConflict):
			app.seatConflictResponse(w, r, conflicts)
		case errors.Is(err, domain.ErrSeatOutOfBounds):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toHoldResponse(hold, app.holds.TTL())

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteHold(w http.ResponseWriter, r *http.Request) {
	hold, ok := app.requestHold(w, r)
	if !ok {
		return
	}

	err := app.orchestrator.Cancel(hold.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrInvalidHoldState):
			app.invalidHoldStateResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestHold resolves the hold named in the URL and checks the caller owns
// it. Foreign holds are reported as not found rather than forbidden.
func (app *application) requestHold(w http.ResponseWriter, r *http.Request) (domain.Hold, bool) {
	holdID, err := uuid.Parse(chi.URLParam(r, "holdId"))
	if err != nil {
		app.notFoundResponse(w, r)
		return domain.Hold{}, false
	}

	hold, err := app.orchestrator.Hold(holdID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return domain.Hold{}, false
	}

	if hold.BuyerToken != app.buyerToken(r) {
		app.notFoundResponse(w, r)
		return domain.Hold{}, false
	}

	return hold, true
}

func toHoldResponse(hold domain.Hold, ttl time.Duration) api.HoldResponse {
	seats := make([]api.SeatRef, len(hold.Seats))
	for i, seat := range hold.Seats {
		seats[i] = api.SeatRef{Row: seat.Row, Number: seat.Number}
	}

	return api.HoldResponse{
		HoldId:      hold.ID.String(),
		ScreeningId: hold.ScreeningID,
		Seats:       seats,
		Status:      string(hold.Status),
		ExpiresAt:   hold.ExpiresAt,
		HoldTime:    int(ttl.Seconds()),
	}
}
