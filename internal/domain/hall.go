package domain

import (
	"context"
	"time"
)

// Hall is the static geometry of a screening room. It is immutable after
// creation; reworking a hall that has sold seats is not supported.
type Hall struct {
	ID          int
	Name        string
	Rows        int
	SeatsPerRow int
	CreatedAt   time.Time
}

func (h Hall) Capacity() int {
	return h.Rows * h.SeatsPerRow
}

// Contains reports whether the seat position exists in the hall grid. Rows
// and seat numbers are zero-based.
func (h Hall) Contains(seat SeatID) bool {
	return seat.Row >= 0 && seat.Row < h.Rows &&
		seat.Number >= 0 && seat.Number < h.SeatsPerRow
}

type HallRepository interface {
	Create(ctx context.Context, hall *Hall) error
	GetById(ctx context.Context, id int) (*Hall, error)
	GetAll(ctx context.Context) ([]*Hall, error)
}
