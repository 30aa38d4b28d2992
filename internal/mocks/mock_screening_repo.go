package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/cinema-reservation/internal/domain"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) GetById(ctx context.Context, id int) (*domain.ScreeningDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScreeningDetail), args.Error(1)
}

func (m *MockScreeningRepo) GetUpcoming(ctx context.Context, movieID int) ([]*domain.ScreeningDetail, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScreeningDetail), args.Error(1)
}

func (m *MockScreeningRepo) GetAllDetails(ctx context.Context) ([]*domain.ScreeningDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScreeningDetail), args.Error(1)
}
