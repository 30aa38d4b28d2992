package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

func (app *application) GetScreenings(w http.ResponseWriter, r *http.Request) {
	movieID := 0

	if movieParam := r.URL.Query().Get("movieId"); movieParam != "" {
		id, err := strconv.Atoi(movieParam)
		if err != nil || id < 1 {
			app.badRequestResponse(w, r, fmt.Errorf("movieId must be a positive integer"))
			return
		}
		movieID = id
	}

	screenings, err := app.screeningRepo.GetUpcoming(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreeningListResponse{
		Screenings: make([]api.ScreeningResponse, len(screenings)),
	}
	for i, screening := range screenings {
		resp.Screenings[i] = toScreeningResponse(screening)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetScreeningSeatMap(w http.ResponseWriter, r *http.Request, screeningID int) {
	if screeningID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("screening ID must be greater than zero"))
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	statuses, err := app.orchestrator.SeatStatuses(r.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScreeningNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toSeatMapResponse(screening, statuses)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toScreeningResponse(screening *domain.ScreeningDetail) api.ScreeningResponse {
	return api.ScreeningResponse{
		Id:         screening.ID,
		MovieId:    screening.MovieID,
		MovieTitle: screening.MovieTitle,
		HallId:     screening.HallID,
		HallName:   screening.HallName,
		StartTime:  screening.StartTime,
	}
}

func toSeatMapResponse(screening *domain.ScreeningDetail, statuses map[domain.SeatID]domain.SeatStatus) api.SeatMapResponse {
	hall := screening.Hall

	seatRows := make([]api.SeatRow, hall.Rows)
	for row := 0; row < hall.Rows; row++ {
		seats := make([]api.Seat, hall.SeatsPerRow)

		for number := 0; number < hall.SeatsPerRow; number++ {
			status := statuses[domain.SeatID{Row: row, Number: number}]

			seats[number] = api.Seat{
				Row:    row,
				Number: number,
				Status: string(status.State),
			}
		}

		seatRows[row] = api.SeatRow{Row: row, Seats: seats}
	}

	return api.SeatMapResponse{
		ScreeningId: screening.ID,
		MovieTitle:  screening.MovieTitle,
		HallName:    screening.HallName,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
		SeatRows:    seatRows,
	}
}
