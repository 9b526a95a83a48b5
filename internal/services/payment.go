package services

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardInfo struct {
	Number string // digits, formatting spaces allowed
	Holder string
	Expiry string // MM/YY
	CVV    string
}

// Authorizer is the payment-gateway boundary. The core only needs an
// approve/decline answer for an amount.
type Authorizer interface {
	Authorize(card CardInfo, amount decimal.Decimal) (bool, error)
}

// SimulatedAuthorizer approves every payment after a fixed delay. It is a
// stand-in for a real gateway integration, not a production policy; swap in a
// real Authorizer before taking live payments.
type SimulatedAuthorizer struct {
	Delay time.Duration
}

func (a SimulatedAuthorizer) Authorize(CardInfo, decimal.Decimal) (bool, error) {
	time.Sleep(a.Delay)
	return true, nil
}
