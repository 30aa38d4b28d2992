package domain

import (
	"context"
	"time"
)

// Screening schedules a movie in a hall at a start time. Created by the
// admin panel; immutable once seats are sold (rescheduling is out of scope).
type Screening struct {
	ID        int
	MovieID   int
	HallID    int
	StartTime time.Time
	CreatedAt time.Time
}

// ScreeningDetail joins a screening with its movie title and hall geometry.
// The reservation core only reads it; catalog data is never mutated here.
type ScreeningDetail struct {
	Screening
	MovieTitle string
	HallName   string
	Hall       Hall
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *Screening) error
	GetById(ctx context.Context, id int) (*ScreeningDetail, error)

	// GetUpcoming lists screenings ordered by start time. A zero movieID
	// means no movie filter.
	GetUpcoming(ctx context.Context, movieID int) ([]*ScreeningDetail, error)

	// GetAllDetails returns every screening with hall geometry; used to
	// rebuild the seat map on startup.
	GetAllDetails(ctx context.Context) ([]*ScreeningDetail, error)
}
