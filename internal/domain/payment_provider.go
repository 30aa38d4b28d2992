package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentMethod struct {
	Kind       string
	CardNumber string
	CardHolder string
}

type PaymentResult struct {
	Approved  bool
	Reference string
	Reason    string
}

// PaymentProvider settles a charge for a given amount. The core treats it as
// an opaque, possibly-failing call with no side effects on seat state; a
// declined charge leaves the hold active so the buyer may retry until the
// hold expires.
type PaymentProvider interface {
	Charge(ctx context.Context, amount decimal.Decimal, currency string, method PaymentMethod) (PaymentResult, error)
}
