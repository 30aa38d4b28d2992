package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/api"
	"github.com/kinoteka/cinema-reservation/internal/booking"
	"github.com/kinoteka/cinema-reservation/internal/clock"
	"github.com/kinoteka/cinema-reservation/internal/domain"
	"github.com/kinoteka/cinema-reservation/internal/mailer"
	"github.com/kinoteka/cinema-reservation/internal/mocks"
	"github.com/kinoteka/cinema-reservation/internal/validator"
)

var testStart = time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC)

// testBooking bundles the reservation core with its mocked collaborators.
type testBooking struct {
	orchestrator *booking.Orchestrator
	holds        *booking.HoldManager
	clock        *clock.Fixed

	screeningRepo   *mocks.MockScreeningRepo
	reservationRepo *mocks.MockReservationRepo
	provider        *mocks.MockPaymentProvider
	mailer          *mailer.MockMailer
}

func newTestBooking() *testBooking {
	clk := clock.NewFixed(testStart)
	seatMap := booking.NewSeatMap(clk)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tb := &testBooking{
		holds:           booking.NewHoldManager(seatMap, clk, logger),
		clock:           clk,
		screeningRepo:   new(mocks.MockScreeningRepo),
		reservationRepo: new(mocks.MockReservationRepo),
		provider:        new(mocks.MockPaymentProvider),
		mailer:          mailer.NewMockMailer(),
	}

	tb.orchestrator = booking.NewOrchestrator(
		seatMap,
		tb.holds,
		booking.NewLedger(tb.reservationRepo, clk),
		tb.screeningRepo,
		tb.provider,
		tb.mailer,
		logger,
	)

	return tb
}

func testScreeningDetail() *domain.ScreeningDetail {
	return &domain.ScreeningDetail{
		Screening: domain.Screening{
			ID:        1,
			MovieID:   7,
			HallID:    1,
			StartTime: testStart.Add(2 * time.Hour),
		},
		MovieTitle: "Rejs",
		HallName:   "Hall A",
		Hall:       domain.Hall{ID: 1, Name: "Hall A", Rows: 8, SeatsPerRow: 10},
	}
}

func newTestApplication(tb *testBooking, opts ...func(*application)) *application {
	app := &application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		mailer:         tb.mailer,
		orchestrator:   tb.orchestrator,
		holds:          tb.holds,

		screeningRepo:   tb.screeningRepo,
		reservationRepo: tb.reservationRepo,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// setupTestSession commits a guest session so the request carries a buyer
// token, mirroring what ensureGuestSession does in production.
func setupTestSession(t *testing.T, app *application, r *http.Request) (*http.Request, string) {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyGuest.String(), true)

	token, _, err := app.sessionManager.Commit(ctx)
	if err != nil {
		t.Fatalf("Failed to commit session: %v", err)
	}

	return r.WithContext(ctx), token
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			// Non-validation 422s carry the generic error body.
			return
		}

		if len(validationResp.ValidationErrors) == 0 {
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if wantErrMessage != "" && !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()

	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("Failed to parse UUID %q: %v", s, err)
	}

	return id
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func ptr[T any](v T) *T {
	return &v
}
