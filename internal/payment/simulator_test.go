package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoteka/cinema-reservation/internal/domain"
)

func TestSimulatorCharge(t *testing.T) {
	tests := []struct {
		name         string
		cardNumber   string
		wantApproved bool
	}{
		{
			name:         "regular card is approved",
			cardNumber:   "4242424242424242",
			wantApproved: true,
		},
		{
			name:         "decline test card is rejected",
			cardNumber:   "4000000000000002",
			wantApproved: false,
		},
		{
			name:         "spaces in the card number are ignored",
			cardNumber:   "4000 0000 0000 0002",
			wantApproved: false,
		},
	}

	simulator := NewSimulator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := domain.PaymentMethod{Kind: "card", CardNumber: tt.cardNumber}

			result, err := simulator.Charge(context.Background(), decimal.NewFromInt(43), domain.Currency, method)
			require.NoError(t, err)

			assert.Equal(t, tt.wantApproved, result.Approved)
			if tt.wantApproved {
				assert.NotEmpty(t, result.Reference)
			} else {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestSimulatorChargeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	method := domain.PaymentMethod{Kind: "card", CardNumber: "4242424242424242"}

	_, err := NewSimulator().Charge(ctx, decimal.NewFromInt(25), domain.Currency, method)
	require.ErrorIs(t, err, context.Canceled)
}
