package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create persists the reservation and its seats in one transaction. The
// unique (screening, row, number) index on reservation_seats makes the store
// itself refuse a double-booking, reported as domain.ErrSeatConflict.
func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reservations
				(id, hold_id, screening_id, first_name, last_name, email, phone,
				 total, currency, payment_status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`

		_, err := tx.Exec(
			ctx,
			query,
			reservation.ID,
			reservation.HoldID,
			reservation.ScreeningID,
			reservation.Buyer.FirstName,
			reservation.Buyer.LastName,
			reservation.Buyer.Email,
			reservation.Buyer.Phone,
			reservation.Total,
			reservation.Currency,
			reservation.PaymentStatus,
			reservation.CreatedAt,
		)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(reservation.Seats))
		for _, seat := range reservation.Seats {
			rows = append(rows, []any{
				reservation.ID,
				reservation.ScreeningID,
				seat.Seat.Row,
				seat.Seat.Number,
				seat.TicketType,
				seat.Price,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"reservation_seats"},
			[]string{"reservation_id", "screening_id", "seat_row", "seat_number", "ticket_type", "price"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatConflict
		}

		return err
	}

	return nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresReservationRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `
		SELECT id, hold_id, screening_id, first_name, last_name, email, phone,
			total, currency, payment_status, created_at, paid_at
		FROM reservations
		WHERE id = $1
	`

	var reservation domain.Reservation

	err := p.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.HoldID,
		&reservation.ScreeningID,
		&reservation.Buyer.FirstName,
		&reservation.Buyer.LastName,
		&reservation.Buyer.Email,
		&reservation.Buyer.Phone,
		&reservation.Total,
		&reservation.Currency,
		&reservation.PaymentStatus,
		&reservation.CreatedAt,
		&reservation.PaidAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	reservation.Seats = seats

	return &reservation, nil
}

func (p *PostgresReservationRepository) retrieveSeats(ctx context.Context, reservationID uuid.UUID) ([]domain.ReservationSeat, error) {
	query := `
		SELECT seat_row, seat_number, ticket_type, price
		FROM reservation_seats
		WHERE reservation_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.ReservationSeat, 0)

	for rows.Next() {
		var seat domain.ReservationSeat

		err := rows.Scan(
			&seat.Seat.Row,
			&seat.Seat.Number,
			&seat.TicketType,
			&seat.Price,
		)

		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresReservationRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reservations
		SET payment_status = 'paid', paid_at = now()
		WHERE id = $1 AND payment_status = 'pending'
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	// Either already paid (idempotent no-op) or unknown.
	var exists bool

	err = p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresReservationRepository) GetBookedSeatsByScreening(ctx context.Context, screeningID int) ([]domain.BookedSeat, error) {
	query := `
		SELECT reservation_id, screening_id, seat_row, seat_number
		FROM reservation_seats
		WHERE screening_id = $1
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make([]domain.BookedSeat, 0)

	for rows.Next() {
		var seat domain.BookedSeat

		err := rows.Scan(
			&seat.ReservationID,
			&seat.ScreeningID,
			&seat.Seat.Row,
			&seat.Seat.Number,
		)

		if err != nil {
			return nil, err
		}

		booked = append(booked, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return booked, nil
}
