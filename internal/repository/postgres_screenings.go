package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinoteka/cinema-reservation/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) Create(ctx context.Context, screening *domain.Screening) error {
	query := `
		INSERT INTO screenings (movie_id, hall_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		screening.MovieID,
		screening.HallID,
		screening.StartTime,
	).Scan(&screening.ID, &screening.CreatedAt)
}

const screeningDetailColumns = `
	s.id,
	s.movie_id,
	s.hall_id,
	s.start_time,
	s.created_at,
	m.title,
	h.id,
	h.name,
	h.seat_rows,
	h.seats_per_row,
	h.created_at
`

func scanScreeningDetail(row pgx.Row) (*domain.ScreeningDetail, error) {
	var detail domain.ScreeningDetail

	err := row.Scan(
		&detail.ID,
		&detail.MovieID,
		&detail.HallID,
		&detail.StartTime,
		&detail.CreatedAt,
		&detail.MovieTitle,
		&detail.Hall.ID,
		&detail.Hall.Name,
		&detail.Hall.Rows,
		&detail.Hall.SeatsPerRow,
		&detail.Hall.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	detail.HallName = detail.Hall.Name

	return &detail, nil
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id int) (*domain.ScreeningDetail, error) {
	query := `
		SELECT ` + screeningDetailColumns + `
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE s.id = $1
	`

	detail, err := scanScreeningDetail(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return detail, nil
}

func (p *PostgresScreeningRepository) GetUpcoming(ctx context.Context, movieID int) ([]*domain.ScreeningDetail, error) {
	query := `
		SELECT ` + screeningDetailColumns + `
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		WHERE s.start_time > now() AND ($1 = 0 OR s.movie_id = $1)
		ORDER BY s.start_time
	`

	return p.queryDetails(ctx, query, movieID)
}

func (p *PostgresScreeningRepository) GetAllDetails(ctx context.Context) ([]*domain.ScreeningDetail, error) {
	query := `
		SELECT ` + screeningDetailColumns + `
		FROM screenings s
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		ORDER BY s.id
	`

	return p.queryDetails(ctx, query)
}

func (p *PostgresScreeningRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*domain.ScreeningDetail, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []*domain.ScreeningDetail{}

	for rows.Next() {
		detail, err := scanScreeningDetail(rows)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}
