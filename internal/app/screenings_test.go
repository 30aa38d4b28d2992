package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

type ScreeningsTestSuite struct {
	suite.Suite
	app     *application
	booking *testBooking
}

func (s *ScreeningsTestSuite) SetupTest() {
	s.booking = newTestBooking()
	s.app = newTestApplication(s.booking)
}

func TestScreeningsSuite(t *testing.T) {
	suite.Run(t, new(ScreeningsTestSuite))
}

func (s *ScreeningsTestSuite) TestGetScreenings() {
	tests := []struct {
		name           string
		url            string
		setupMocks     func()
		wantStatus     int
		wantCount      int
		wantErrMessage string
	}{
		{
			name:           "should fail when movieId is not a number",
			url:            "/screenings?movieId=abc",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "movieId must be a positive integer",
		},
		{
			name: "should fail when the catalog query fails",
			url:  "/screenings",
			setupMocks: func() {
				s.booking.screeningRepo.On("GetUpcoming", mock.Anything, 0).
					Return(nil, fmt.Errorf("database error")).
					Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should list upcoming screenings",
			url:  "/screenings",
			setupMocks: func() {
				s.booking.screeningRepo.On("GetUpcoming", mock.Anything, 0).
					Return([]*domain.ScreeningDetail{testScreeningDetail()}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name: "should filter by movie",
			url:  "/screenings?movieId=7",
			setupMocks: func() {
				s.booking.screeningRepo.On("GetUpcoming", mock.Anything, 7).
					Return([]*domain.ScreeningDetail{testScreeningDetail()}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.GetScreenings(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.ScreeningListResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Require().Len(resp.Screenings, tt.wantCount)
				s.Equal("Rejs", resp.Screenings[0].MovieTitle)
				s.Equal("Hall A", resp.Screenings[0].HallName)
			}
		})
	}
}

func (s *ScreeningsTestSuite) TestGetScreeningSeatMap() {
	s.booking.screeningRepo.On("GetById", mock.Anything, 1).Return(testScreeningDetail(), nil)
	s.booking.screeningRepo.On("GetById", mock.Anything, 99).Return(nil, domain.ErrRecordNotFound)

	s.Run("unknown screening reports not found", func() {
		w, r := executeRequest(s.T(), http.MethodGet, "/screenings/99/seats", nil)

		s.app.GetScreeningSeatMap(w, r, 99)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("fresh screening has only available seats", func() {
		w, r := executeRequest(s.T(), http.MethodGet, "/screenings/1/seats", nil)

		s.app.GetScreeningSeatMap(w, r, 1)

		s.Require().Equal(http.StatusOK, w.Code)

		var resp api.SeatMapResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		s.Equal(8, resp.Rows)
		s.Equal(10, resp.SeatsPerRow)
		s.Require().Len(resp.SeatRows, 8)

		for _, row := range resp.SeatRows {
			s.Len(row.Seats, 10)
			for _, seat := range row.Seats {
				s.Equal(string(domain.SeatAvailable), seat.Status)
			}
		}
	})

	s.Run("held seats show up in the map", func() {
		w, r := executeRequest(s.T(), http.MethodPost, "/screenings/1/holds",
			api.CreateHoldRequest{Seats: []api.SeatRef{{Row: 2, Number: 3}}})
		r, _ = setupTestSession(s.T(), s.app, r)
		s.app.CreateHold(w, r, 1)
		s.Require().Equal(http.StatusCreated, w.Code)

		w, r = executeRequest(s.T(), http.MethodGet, "/screenings/1/seats", nil)
		s.app.GetScreeningSeatMap(w, r, 1)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp api.SeatMapResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

		s.Equal(string(domain.SeatHeld), resp.SeatRows[2].Seats[3].Status)
	})
}
