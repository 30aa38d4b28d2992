package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

func (app *application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMovieRequest

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

	movie := &domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		PosterUrl:   req.PosterUrl,
		ReleaseDate: req.ReleaseDate,
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieResponse{
		MovieSummary: toMovieSummary(movie),
		CreatedAt:    movie.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req api.CreateHallRequest

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

	hall := &domain.Hall{
		Name:        req.Name,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	}

	err = app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.HallResponse, len(halls))
	for i, hall := range halls {
		resp[i] = toHallResponse(hall)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req api.CreateScreeningRequest

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

	movie, err := app.movieRepo.GetById(r.Context(), req.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("movie %d does not exist", req.MovieId))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), req.HallId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("hall %d does not exist", req.HallId))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	screening := &domain.Screening{
		MovieID:   req.MovieId,
		HallID:    req.HallId,
		StartTime: req.StartTime,
	}

	err = app.screeningRepo.Create(r.Context(), screening)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Make the new screening holdable without waiting for a restart.
	detail, err := app.screeningRepo.GetById(r.Context(), screening.ID)
	if err == nil {
		app.orchestrator.RegisterScreening(detail)
	}

	resp := api.ScreeningResponse{
		Id:         screening.ID,
		MovieId:    screening.MovieID,
		MovieTitle: movie.Title,
		HallId:     screening.HallID,
		HallName:   hall.Name,
		StartTime:  screening.StartTime,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toHallResponse(hall *domain.Hall) api.HallResponse {
	return api.HallResponse{
		Id:          hall.ID,
		Name:        hall.Name,
		Rows:        hall.Rows,
		SeatsPerRow: hall.SeatsPerRow,
		Capacity:    hall.Capacity(),
	}
}
