package services

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"threadvibe/internal/domain"
	"threadvibe/internal/events"
	"threadvibe/internal/repos"
	"threadvibe/internal/validate"
)

// CartLine is one line of the client-held cart. Price is the unit price the
// customer saw; it gets frozen onto the order item.
type CartLine struct {
	ProductID string
	VariantID *string
	Qty       int
	Price     decimal.Decimal
}

type CheckoutInput struct {
	Lines         []CartLine
	Shipping      validate.Shipping
	PaymentMethod string
	Card          *CardInfo // required when PaymentMethod is credit_card
	CustomerID    *string   // set when the shopper is logged in
	Email         string    // display email for the receipt; empty for guests
}

type Receipt struct {
	OrderID       string `json:"orderId"`
	OrderNumber   int    `json:"orderNumber"`
	Email         string `json:"email"`
	PaymentMethod string `json:"paymentMethod"`
}

var (
	flatShipping      = decimal.NewFromInt(500)
	freeShippingAbove = decimal.NewFromInt(10000)
	taxRate           = decimal.NewFromFloat(0.08)
)

// ComputeTotal prices a cart: subtotal, flat 500 shipping waived above 10000,
// plus 8% tax on the subtotal.
func ComputeTotal(lines []CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	total := subtotal.Add(subtotal.Mul(taxRate))
	if subtotal.LessThanOrEqual(freeShippingAbove) {
		total = total.Add(flatShipping)
	}
	return total
}

type CheckoutService struct {
	Customers *repos.CustomerRepo
	Orders    *repos.OrderRepo
	Stock     *StockService
	Payments  Authorizer
	Bus       *events.Bus
}

func NewCheckoutService(customers *repos.CustomerRepo, orders *repos.OrderRepo, stock *StockService, payments Authorizer, bus *events.Bus) *CheckoutService {
	return &CheckoutService{Customers: customers, Orders: orders, Stock: stock, Payments: payments, Bus: bus}
}

// Checkout turns a cart plus shipping/payment info into a customer, an order,
// its items, and a stock decrement — all in one transaction. Either every row
// lands or none do.
func (s *CheckoutService) Checkout(in CheckoutInput) (Receipt, error) {
	if len(in.Lines) == 0 {
		return Receipt{}, &ValidationError{Msg: "cart is empty"}
	}
	for _, l := range in.Lines {
		if l.Qty < 1 {
			return Receipt{}, &ValidationError{Msg: "quantity must be at least 1", Fields: []string{l.ProductID}}
		}
	}
	if missing := validate.MissingShippingFields(in.Shipping); len(missing) > 0 {
		return Receipt{}, &ValidationError{Msg: "missing required fields", Fields: missing}
	}
	if in.PaymentMethod != domain.PaymentCreditCard && in.PaymentMethod != domain.PaymentCashOnDelivery {
		return Receipt{}, &ValidationError{Msg: "unsupported payment method", Fields: []string{"paymentMethod"}}
	}

	total := ComputeTotal(in.Lines)

	if in.PaymentMethod == domain.PaymentCreditCard {
		if in.Card == nil {
			return Receipt{}, &ValidationError{Msg: "card details are required"}
		}
		if problems := validate.CardProblems(in.Card.Number, in.Card.Holder, in.Card.Expiry, in.Card.CVV); len(problems) > 0 {
			return Receipt{}, &ValidationError{Msg: "invalid card details", Fields: problems}
		}
		approved, err := s.Payments.Authorize(*in.Card, total)
		if err != nil {
			return Receipt{}, &OrderCreationError{Err: err}
		}
		if !approved {
			return Receipt{}, &OrderCreationError{Err: errors.New("payment declined")}
		}
	}

	tx, err := s.Orders.DB.Beginx()
	if err != nil {
		return Receipt{}, &OrderCreationError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	// Resolve or create the customer: guests get a fresh row, account holders
	// get one row keyed by their user id, created on first checkout and
	// overwritten with the latest shipping details after.
	customerID := in.CustomerID
	if customerID == nil {
		id := uuid.NewString()
		if err := s.Customers.CreateGuestTx(tx, customerFromForm(id, in.Shipping)); err != nil {
			return Receipt{}, &OrderCreationError{Err: err}
		}
		customerID = &id
	} else {
		if err := s.Customers.UpsertShippingTx(tx, customerFromForm(*customerID, in.Shipping)); err != nil {
			return Receipt{}, &OrderCreationError{Err: err}
		}
	}

	orderID := uuid.NewString()
	order := domain.Order{
		ID:         orderID,
		CustomerID: customerID,
		Status:     domain.StatusPending,
		Total:      total,
		// Snapshot fields copied from the form; later customer edits must not
		// touch past orders.
		ShipAddress:    in.Shipping.Address,
		ShipCity:       in.Shipping.City,
		ShipState:      in.Shipping.State,
		ShipPostalCode: in.Shipping.PostalCode,
		ShipCountry:    in.Shipping.Country,
		PaymentMethod:  in.PaymentMethod,
	}
	if err := s.Orders.CreateTx(tx, order); err != nil {
		return Receipt{}, &OrderCreationError{Err: err}
	}

	for _, l := range in.Lines {
		item := domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Qty:       l.Qty,
			Price:     l.Price,
		}
		if err := s.Orders.InsertItemTx(tx, item); err != nil {
			return Receipt{}, &OrderCreationError{Err: err}
		}
	}

	if err := s.Stock.AdjustTx(tx, orderID, StockDecrement); err != nil {
		return Receipt{}, &OrderCreationError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return Receipt{}, &OrderCreationError{Err: err}
	}

	s.Bus.Invalidate(events.KeyAdminProducts, events.KeyAdminOrders)

	email := in.Email
	if email == "" {
		email = "Guest"
	}
	return Receipt{
		OrderID:       orderID,
		OrderNumber:   100000 + rand.IntN(900000),
		Email:         email,
		PaymentMethod: in.PaymentMethod,
	}, nil
}

func customerFromForm(id string, f validate.Shipping) domain.Customer {
	return domain.Customer{
		ID:         id,
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Phone:      f.Phone,
		Address:    f.Address,
		City:       f.City,
		State:      f.State,
		PostalCode: f.PostalCode,
		Country:    f.Country,
	}
}
