package app

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/kinoteka/cinema-reservation/api"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestSession)

	r.Get("/health", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			params := api.GetMoviesParams{}

			if page := r.URL.Query().Get("page"); page != "" {
				if pageNum, err := strconv.Atoi(page); err == nil {
					params.Page = &pageNum
				}
			}
			if pageSize := r.URL.Query().Get("pageSize"); pageSize != "" {
				if pageSizeNum, err := strconv.Atoi(pageSize); err == nil {
					params.PageSize = &pageSizeNum
				}
			}
			if sort := r.URL.Query().Get("sort"); sort != "" {
				params.Sort = &sort
			}
			if term := r.URL.Query().Get("term"); term != "" {
				params.Term = &term
			}

			app.GetMovies(w, r, params)
		})

		r.Get("/{movieId}", app.withIntParam("movieId", app.GetMovie))
	})

	r.Route("/screenings", func(r chi.Router) {
		r.Get("/", app.GetScreenings)
		r.Get("/{screeningId}/seats", app.withIntParam("screeningId", app.GetScreeningSeatMap))
		r.Post("/{screeningId}/holds", app.withIntParam("screeningId", app.CreateHold))
	})

	r.Route("/holds/{holdId}", func(r chi.Router) {
		r.Delete("/", app.DeleteHold)
		r.Post("/payment", app.SubmitPayment)
	})

	r.Get("/reservations/{reservationId}", app.GetReservation)

	r.Route("/admin", func(r chi.Router) {
		r.Use(app.requireAdmin)

		r.Post("/movies", app.CreateMovie)
		r.Post("/halls", app.CreateHall)
		r.Get("/halls", app.GetHalls)
		r.Post("/screenings", app.CreateScreening)
	})

	return r
}

// withIntParam adapts handlers that take a numeric URL parameter.
func (app *application) withIntParam(name string, next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			app.notFoundResponse(w, r)
			return
		}

		next(w, r, value)
	}
}
