package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"threadvibe/internal/domain"
	"threadvibe/internal/log"
	"threadvibe/internal/services"
	"threadvibe/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Auth     *services.AuthService
}

// checkoutRequest mirrors what the cart page submits.
type checkoutRequest struct {
	Items []struct {
		ProductID string          `json:"productId"`
		VariantID *string         `json:"variantId"`
		Quantity  int             `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
	} `json:"items"`
	Shipping struct {
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"shipping"`
	PaymentMethod string `json:"paymentMethod"`
	Card          *struct {
		CardNumber     string `json:"cardNumber"`
		CardholderName string `json:"cardholderName"`
		ExpiryDate     string `json:"expiryDate"`
		CVV            string `json:"cvv"`
	} `json:"card"`
}

func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	return render(c, "checkout", fiber.Map{})
}

// Place handles POST /api/v1/checkout.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "checkout.body.bad", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed checkout payload"})
	}

	in := services.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		Shipping: validate.Shipping{
			FirstName:  req.Shipping.FirstName,
			LastName:   req.Shipping.LastName,
			Phone:      req.Shipping.Phone,
			Address:    req.Shipping.Address,
			City:       req.Shipping.City,
			State:      req.Shipping.State,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		},
	}
	for _, it := range req.Items {
		in.Lines = append(in.Lines, services.CartLine{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Qty:       it.Quantity,
			Price:     it.Price,
		})
	}
	if req.Card != nil {
		in.Card = &services.CardInfo{
			Number: req.Card.CardNumber,
			Holder: req.Card.CardholderName,
			Expiry: req.Card.ExpiryDate,
			CVV:    req.Card.CVV,
		}
	}

	// Logged-in shoppers keep one customer row; guests get a new one.
	if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
		in.CustomerID = &u.ID
		in.Email = u.Email
	}

	receipt, err := h.Checkout.Checkout(in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			log.Security(c, "checkout.validation.fail", map[string]any{"error": verr.Error()})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}
		log.Error(c, "checkout.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not place your order. Please try again.",
		})
	}

	log.Audit(c, "order.place", map[string]any{
		"order_id":       receipt.OrderID,
		"order_number":   receipt.OrderNumber,
		"payment_method": receipt.PaymentMethod,
	})
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// Confirmation renders the post-checkout order page.
func (h *CheckoutHandler) Confirmation(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.Checkout.Orders.Get(oid)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{
		"Order":       o,
		"Items":       items,
		"StatusLabel": domain.StatusLabel(o.Status),
	})
}
