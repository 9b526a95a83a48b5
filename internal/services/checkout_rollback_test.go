package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"threadvibe/internal/events"
	"threadvibe/internal/repos"
	"threadvibe/internal/services"
)

// Drives the checkout against a mocked store to prove the transaction is
// rolled back the moment any write fails, with no compensating cleanup left
// to chance.
func TestCheckout_RollsBackWhenOrderInsertFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	svc := services.NewCheckoutService(custRepo, orderRepo,
		services.NewStockService(orderRepo, prodRepo),
		services.SimulatedAuthorizer{Delay: 0}, events.NewBus())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO customers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(fmt.Errorf("disk I/O error"))
	mock.ExpectRollback()

	_, err = svc.Checkout(services.CheckoutInput{
		Lines:         []services.CartLine{{ProductID: "p1", Qty: 2, Price: decimal.NewFromInt(1000)}},
		Shipping:      shippingForm(),
		PaymentMethod: "cash_on_delivery",
	})

	var oerr *services.OrderCreationError
	if !errors.As(err, &oerr) {
		t.Fatalf("want OrderCreationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
