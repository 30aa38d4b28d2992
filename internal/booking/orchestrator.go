package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/internal/domain"
	"github.com/kinoteka/cinema-reservation/internal/mailer"
)

// Orchestrator coordinates the seat map, hold manager, pricing and ledger to
// implement the select -> hold -> pay -> confirm/cancel lifecycle. It is the
// only entry point exposed to the transport layer.
type Orchestrator struct {
	seatMap    *SeatMap
	holds      *HoldManager
	ledger     *Ledger
	screenings domain.ScreeningRepository
	provider   domain.PaymentProvider
	mailer     mailer.Mailer
	logger     *slog.Logger

	wg sync.WaitGroup
}

func NewOrchestrator(
	seatMap *SeatMap,
	holds *HoldManager,
	ledger *Ledger,
	screenings domain.ScreeningRepository,
	provider domain.PaymentProvider,
	m mailer.Mailer,
	logger *slog.Logger) *Orchestrator {

	return &Orchestrator{
		seatMap:    seatMap,
		holds:      holds,
		ledger:     ledger,
		screenings: screenings,
		provider:   provider,
		mailer:     m,
		logger:     logger,
	}
}

// Bootstrap rebuilds the in-memory seat map from the catalog and the ledger.
// Must run before the server starts accepting requests.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	screenings, err := o.screenings.GetAllDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to load screenings: %w", err)
	}

	for _, screening := range screenings {
		o.seatMap.Register(screening.ID, screening.Hall)

		booked, err := o.ledger.repo.GetBookedSeatsByScreening(ctx, screening.ID)
		if err != nil {
			return fmt.Errorf("failed to load booked seats for screening %d: %w", screening.ID, err)
		}

		byReservation := make(map[uuid.UUID][]domain.SeatID)
		for _, bs := range booked {
			byReservation[bs.ReservationID] = append(byReservation[bs.ReservationID], bs.Seat)
		}

		for reservationID, seats := range byReservation {
			if err := o.seatMap.MarkBooked(screening.ID, seats, reservationID); err != nil {
				return err
			}
		}
	}

	o.logger.Info("seat map restored", "screenings", len(screenings))

	return nil
}

// RegisterScreening makes a newly created screening reservable.
func (o *Orchestrator) RegisterScreening(screening *domain.ScreeningDetail) {
	o.seatMap.Register(screening.ID, screening.Hall)
}

// SeatStatuses returns the live seat map for a screening, loading its
// geometry on demand if this process has not seen it yet.
func (o *Orchestrator) SeatStatuses(ctx context.Context, screeningID int) (map[domain.SeatID]domain.SeatStatus, error) {
	if err := o.ensureRegistered(ctx, screeningID); err != nil {
		return nil, err
	}

	return o.seatMap.Status(screeningID)
}

// SelectSeats grants a time-boxed hold on the requested seats. On conflict
// no hold is created and the conflicting subset is returned.
func (o *Orchestrator) SelectSeats(
	ctx context.Context,
	screeningID int,
	seats []domain.SeatID,
	buyerToken string) (domain.Hold, []domain.SeatID, error) {

	if err := o.ensureRegistered(ctx, screeningID); err != nil {
		return domain.Hold{}, nil, err
	}

	return o.holds.Create(screeningID, seats, buyerToken)
}

// Hold returns a snapshot of the hold, expiring it first if due.
func (o *Orchestrator) Hold(holdID uuid.UUID) (domain.Hold, error) {
	return o.holds.Get(holdID)
}

// SubmitPayment drives an active hold through payment and, on approval,
// converts it into a ledger entry. A declined charge leaves the hold active
// so the buyer may retry until it expires. A ledger write failure rolls the
// in-memory confirmation back, leaving seats exactly as they were.
func (o *Orchestrator) SubmitPayment(
	ctx context.Context,
	holdID uuid.UUID,
	buyer domain.BuyerInfo,
	tickets []domain.SeatTicket,
	method domain.PaymentMethod) (*domain.Reservation, error) {

	hold, err := o.holds.Get(holdID)
	if err != nil {
		return nil, err
	}

	switch hold.Status {
	case domain.HoldActive:
	case domain.HoldExpired:
		return nil, domain.ErrHoldExpired
	default:
		return nil, domain.ErrInvalidHoldState
	}

	if err := matchTickets(hold.Seats, tickets); err != nil {
		return nil, err
	}

	total, err := domain.TotalPrice(tickets)
	if err != nil {
		return nil, err
	}

	result, err := o.provider.Charge(ctx, total, domain.Currency, method)
	if err != nil {
		return nil, fmt.Errorf("payment provider call failed: %w", err)
	}

	if !result.Approved {
		o.logger.Info("payment declined", "hold_id", holdID, "reason", result.Reason)
		return nil, domain.ErrPaymentDeclined
	}

	reservationID := uuid.New()

	hold, err = o.holds.Confirm(holdID, reservationID)
	if err != nil {
		return nil, err
	}

	reservation, err := o.ledger.Record(ctx, hold, reservationID, buyer, tickets, total)
	if err != nil {
		o.holds.abortConfirm(holdID)
		return nil, fmt.Errorf("failed to record reservation: %w", err)
	}

	err = o.ledger.MarkPaid(ctx, reservationID)
	if err != nil {
		// The booking stands; payment status reconciliation can retry later.
		o.logger.Error("failed to mark reservation as paid", "reservation_id", reservationID, "error", err)
	} else {
		reservation.PaymentStatus = domain.PaymentPaid
	}

	o.sendConfirmationEmail(ctx, reservation)

	return reservation, nil
}

// Cancel releases an active hold.
func (o *Orchestrator) Cancel(holdID uuid.UUID) error {
	return o.holds.Cancel(holdID)
}

// Reservation looks up a ledger entry.
func (o *Orchestrator) Reservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	return o.ledger.Get(ctx, reservationID)
}

// Wait blocks until background work (confirmation emails) has finished.
// Called during graceful shutdown.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) ensureRegistered(ctx context.Context, screeningID int) error {
	if o.seatMap.Registered(screeningID) {
		return nil
	}

	screening, err := o.screenings.GetById(ctx, screeningID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrScreeningNotFound
		}

		return err
	}

	o.seatMap.Register(screening.ID, screening.Hall)

	return nil
}

func (o *Orchestrator) sendConfirmationEmail(ctx context.Context, reservation *domain.Reservation) {
	screening, err := o.screenings.GetById(ctx, reservation.ScreeningID)
	if err != nil {
		o.logger.Error("failed to load screening for confirmation email", "error", err)
		return
	}

	o.wg.Add(1)

	go func() {
		defer o.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				o.logger.Error("panic occurred during sending confirmation mail", "panic", err)
			}
		}()

		data := map[string]any{
			"reservationID": reservation.ID,
			"firstName":     reservation.Buyer.FirstName,
			"movieTitle":    screening.MovieTitle,
			"hallName":      screening.HallName,
			"startTime":     screening.StartTime,
			"seats":         reservation.Seats,
			"total":         reservation.Total,
			"currency":      reservation.Currency,
		}

		err := o.mailer.Send(reservation.Buyer.Email, "reservation_confirmation.tmpl", data)
		if err != nil {
			o.logger.Error("failed to send confirmation email", "error", err)
		} else {
			o.logger.Info("confirmation email sent", "reservation_id", reservation.ID)
		}
	}()
}

// matchTickets checks that the submitted tickets cover exactly the held
// seats, one ticket per seat.
func matchTickets(held []domain.SeatID, tickets []domain.SeatTicket) error {
	if len(held) != len(tickets) {
		return domain.ErrTicketSeatMismatch
	}

	heldSet := make(map[domain.SeatID]bool, len(held))
	for _, seat := range held {
		heldSet[seat] = true
	}

	seen := make(map[domain.SeatID]bool, len(tickets))

	for _, ticket := range tickets {
		if !heldSet[ticket.Seat] || seen[ticket.Seat] {
			return domain.ErrTicketSeatMismatch
		}
		seen[ticket.Seat] = true
	}

	return nil
}
