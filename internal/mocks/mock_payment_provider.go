package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kinoteka/cinema-reservation/internal/domain"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) Charge(
	ctx context.Context,
	amount decimal.Decimal,
	currency string,
	method domain.PaymentMethod) (domain.PaymentResult, error) {

	args := m.Called(ctx, amount, currency, method)
	return args.Get(0).(domain.PaymentResult), args.Error(1)
}
