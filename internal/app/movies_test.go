package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
	"github.com/kinoteka/cinema-reservation/internal/mocks"
)

type MoviesTestSuite struct {
	suite.Suite
	app       *application
	movieRepo *mocks.MockMovieRepo
}

func (s *MoviesTestSuite) SetupTest() {
	s.movieRepo = new(mocks.MockMovieRepo)

	s.app = newTestApplication(newTestBooking(), func(a *application) {
		a.movieRepo = s.movieRepo
	})
}

func TestMoviesSuite(t *testing.T) {
	suite.Run(t, new(MoviesTestSuite))
}

func testMovie() *domain.Movie {
	return &domain.Movie{
		ID:          7,
		Title:       "Rejs",
		Description: "A cruise ship comedy",
		Duration:    65,
		ReleaseDate: time.Date(1970, time.July, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:   testStart,
	}
}

func (s *MoviesTestSuite) TestGetMovies() {
	tests := []struct {
		name           string
		params         api.GetMoviesParams
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when page is zero",
			params:         api.GetMoviesParams{Page: ptr(0)},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 1",
		},
		{
			name:           "should fail when page size exceeds the maximum",
			params:         api.GetMoviesParams{PageSize: ptr(500)},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 100",
		},
		{
			name:       "should fail when sort column is not allowed",
			params:     api.GetMoviesParams{Sort: ptr("id; DROP TABLE movies")},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "should fail when the catalog query fails",
			setupMocks: func() {
				s.movieRepo.On("GetAll", mock.Anything, mock.Anything).
					Return(nil, nil, fmt.Errorf("database error")).
					Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:   "should list movies with defaults applied",
			params: api.GetMoviesParams{Term: ptr("rejs")},
			setupMocks: func() {
				filters := domain.MovieFilters{Page: 1, PageSize: 10, Sort: "id", Term: "rejs"}

				s.movieRepo.On("GetAll", mock.Anything, filters).
					Return([]*domain.Movie{testMovie()}, domain.NewMetadata(1, 1, 10), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/movies", nil)

			s.app.GetMovies(w, r, tt.params)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.MovieListResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Require().Len(resp.Movies, 1)
				s.Equal("Rejs", resp.Movies[0].Title)
				s.Require().NotNil(resp.Metadata)
				s.Equal(1, resp.Metadata.TotalRecords)
			}
		})
	}
}

func (s *MoviesTestSuite) TestGetMovie() {
	tests := []struct {
		name       string
		movieID    int
		setupMocks func()
		wantStatus int
	}{
		{
			name:       "should fail when movie ID is zero or negative",
			movieID:    0,
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "should fail when the movie does not exist",
			movieID: 99,
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "should return the movie",
			movieID: 7,
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, 7).Return(testMovie(), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/movies/7", nil)

			s.app.GetMovie(w, r, tt.movieID)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.MovieResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(7, resp.Id)
				s.Equal("Rejs", resp.Title)
			}
		})
	}
}
