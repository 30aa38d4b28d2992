package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kinoteka/cinema-reservation/internal/domain"
	"github.com/shopspring/decimal"
)

// declineSuffix mimics gateway test cards: any card number ending in 0002 is
// declined, everything else is approved.
const declineSuffix = "0002"

// Simulator is the stand-in payment collaborator. No real charge ever
// happens, which is also why retrying after a decline is safe without an
// idempotency key.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

func (s *Simulator) Charge(
	ctx context.Context,
	amount decimal.Decimal,
	currency string,
	method domain.PaymentMethod) (domain.PaymentResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.PaymentResult{}, err
	}

	card := strings.ReplaceAll(method.CardNumber, " ", "")

	if strings.HasSuffix(card, declineSuffix) {
		return domain.PaymentResult{
			Approved: false,
			Reason:   "card declined",
		}, nil
	}

	return domain.PaymentResult{
		Approved:  true,
		Reference: "sim_" + uuid.NewString(),
	}, nil
}
