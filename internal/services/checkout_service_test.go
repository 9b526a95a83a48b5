package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"threadvibe/internal/events"
	"threadvibe/internal/repos"
	"threadvibe/internal/services"
	"threadvibe/internal/validate"
)

func checkoutFixture(t *testing.T) (*services.CheckoutService, *repos.OrderRepo, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	stock := services.NewStockService(orderRepo, prodRepo)
	svc := services.NewCheckoutService(custRepo, orderRepo, stock,
		services.SimulatedAuthorizer{Delay: 0}, events.NewBus())
	return svc, orderRepo, prodRepo
}

func shippingForm() validate.Shipping {
	return validate.Shipping{
		FirstName:  "Rina",
		LastName:   "Sato",
		Address:    "1 Main St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "US",
	}
}

func TestCheckout_GuestHappyPath(t *testing.T) {
	svc, orderRepo, prodRepo := checkoutFixture(t)
	db := prodRepo.DB
	seedProduct(t, db, "p1", 1000, 5)

	lines := []services.CartLine{{ProductID: "p1", Qty: 2, Price: decimal.NewFromInt(1000)}}
	receipt, err := svc.Checkout(services.CheckoutInput{
		Lines:         lines,
		Shipping:      shippingForm(),
		PaymentMethod: "cash_on_delivery",
	})
	if err != nil {
		t.Fatal(err)
	}

	if receipt.OrderID == "" {
		t.Fatal("no order id")
	}
	if receipt.OrderNumber < 100000 || receipt.OrderNumber > 999999 {
		t.Fatalf("order number out of range: %d", receipt.OrderNumber)
	}
	if receipt.Email != "Guest" {
		t.Fatalf("want Guest receipt email, got %q", receipt.Email)
	}

	if got := stockOf(t, db, "p1"); got != 3 {
		t.Fatalf("want stock=3 after checkout, got %d", got)
	}

	o, items, err := orderRepo.Get(receipt.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "pending" {
		t.Fatalf("want pending order, got %s", o.Status)
	}
	if !o.Total.Equal(services.ComputeTotal(lines)) {
		t.Fatalf("total mismatch: %s", o.Total)
	}
	if len(items) != 1 || items[0].Qty != 2 || !items[0].Price.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("bad items: %+v", items)
	}
	if o.CustomerID == nil {
		t.Fatal("guest checkout must still create a customer row")
	}

	// A guest customer row holds the form data.
	var first string
	if err := db.Get(&first, `SELECT first_name FROM customers WHERE id=?`, *o.CustomerID); err != nil {
		t.Fatal(err)
	}
	if first != "Rina" {
		t.Fatalf("want customer first name Rina, got %q", first)
	}
}

func TestCheckout_TwoItemsDecrementBoth(t *testing.T) {
	svc, _, prodRepo := checkoutFixture(t)
	db := prodRepo.DB
	seedProduct(t, db, "p1", 1000, 10)
	seedProduct(t, db, "p2", 2000, 1)

	_, err := svc.Checkout(services.CheckoutInput{
		Lines: []services.CartLine{
			{ProductID: "p1", Qty: 3, Price: decimal.NewFromInt(1000)},
			{ProductID: "p2", Qty: 1, Price: decimal.NewFromInt(2000)},
		},
		Shipping:      shippingForm(),
		PaymentMethod: "cash_on_delivery",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := stockOf(t, db, "p1"); got != 7 {
		t.Fatalf("want p1 stock=7, got %d", got)
	}
	if got := stockOf(t, db, "p2"); got != 0 {
		t.Fatalf("want p2 stock=0, got %d", got)
	}
}

func TestCheckout_MissingFieldsRejected(t *testing.T) {
	svc, _, prodRepo := checkoutFixture(t)
	seedProduct(t, prodRepo.DB, "p1", 1000, 5)

	form := shippingForm()
	form.City = ""
	form.Country = ""

	_, err := svc.Checkout(services.CheckoutInput{
		Lines:         []services.CartLine{{ProductID: "p1", Qty: 1, Price: decimal.NewFromInt(1000)}},
		Shipping:      form,
		PaymentMethod: "cash_on_delivery",
	})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0] != "city" || verr.Fields[1] != "country" {
		t.Fatalf("want [city country], got %v", verr.Fields)
	}

	// Validation failure means the operation was never attempted.
	var n int
	if err := prodRepo.DB.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order should exist, found %d", n)
	}
}

func TestCheckout_CardValidation(t *testing.T) {
	svc, _, prodRepo := checkoutFixture(t)
	seedProduct(t, prodRepo.DB, "p1", 1000, 5)
	lines := []services.CartLine{{ProductID: "p1", Qty: 1, Price: decimal.NewFromInt(1000)}}

	bad := &services.CardInfo{Number: "1234", Holder: "", Expiry: "13-99", CVV: "12"}
	_, err := svc.Checkout(services.CheckoutInput{
		Lines: lines, Shipping: shippingForm(),
		PaymentMethod: "credit_card", Card: bad,
	})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError for bad card, got %v", err)
	}

	good := &services.CardInfo{Number: "4242 4242 4242 4242", Holder: "Rina Sato", Expiry: "12/27", CVV: "123"}
	if _, err := svc.Checkout(services.CheckoutInput{
		Lines: lines, Shipping: shippingForm(),
		PaymentMethod: "credit_card", Card: good,
	}); err != nil {
		t.Fatalf("valid card should pass the simulated authorizer: %v", err)
	}
}

func TestCheckout_ItemPriceSurvivesProductEdit(t *testing.T) {
	svc, orderRepo, prodRepo := checkoutFixture(t)
	db := prodRepo.DB
	seedProduct(t, db, "p1", 1000, 5)

	receipt, err := svc.Checkout(services.CheckoutInput{
		Lines:         []services.CartLine{{ProductID: "p1", Qty: 1, Price: decimal.NewFromInt(1000)}},
		Shipping:      shippingForm(),
		PaymentMethod: "cash_on_delivery",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(`UPDATE products SET price=9999 WHERE id='p1'`); err != nil {
		t.Fatal(err)
	}

	_, items, err := orderRepo.Get(receipt.OrderID)
	if err != nil {
		t.Fatal(err)
	}
	if !items[0].Price.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("order item price must stay frozen at 1000, got %s", items[0].Price)
	}
}

func TestCheckout_MidSequenceFailureLeavesNoTrace(t *testing.T) {
	svc, _, prodRepo := checkoutFixture(t)
	db := prodRepo.DB
	seedProduct(t, db, "p1", 1000, 10)
	// Second line references a product that does not exist, so the item
	// insert fails after customer and order rows were already written.

	_, err := svc.Checkout(services.CheckoutInput{
		Lines: []services.CartLine{
			{ProductID: "p1", Qty: 3, Price: decimal.NewFromInt(1000)},
			{ProductID: "ghost", Qty: 1, Price: decimal.NewFromInt(500)},
		},
		Shipping:      shippingForm(),
		PaymentMethod: "cash_on_delivery",
	})
	var oerr *services.OrderCreationError
	if !errors.As(err, &oerr) {
		t.Fatalf("want OrderCreationError, got %v", err)
	}

	for _, table := range []string{"customers", "orders", "order_items"} {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Fatalf("rollback must leave %s empty, found %d rows", table, n)
		}
	}
	if got := stockOf(t, db, "p1"); got != 10 {
		t.Fatalf("stock must be untouched after rollback, got %d", got)
	}
}

func TestComputeTotal(t *testing.T) {
	lines := []services.CartLine{{ProductID: "p1", Qty: 2, Price: decimal.NewFromInt(1000)}}
	// 2000 subtotal + 500 shipping + 160 tax.
	if got := services.ComputeTotal(lines); !got.Equal(decimal.NewFromInt(2660)) {
		t.Fatalf("want 2660, got %s", got)
	}

	big := []services.CartLine{{ProductID: "p1", Qty: 2, Price: decimal.NewFromInt(10000)}}
	// Shipping waived above 10000: 20000 + 1600 tax.
	if got := services.ComputeTotal(big); !got.Equal(decimal.NewFromInt(21600)) {
		t.Fatalf("want 21600, got %s", got)
	}
}
