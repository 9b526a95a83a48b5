package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"threadvibe/internal/repos"
)

// Adjustment direction for an order's line items.
const (
	StockDecrement = "decrement"
	StockRestore   = "restore"
)

// StockService applies an order's line-item quantities to product stock.
// Each item is one conditional update (decrement clamps at zero in SQL), and
// a whole adjustment runs inside a single transaction: if any item fails the
// entire adjustment rolls back. There is no read-then-write anywhere, so
// concurrent adjustments on the same product cannot lose updates.
type StockService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
}

func NewStockService(orders *repos.OrderRepo, products *repos.ProductRepo) *StockService {
	return &StockService{Orders: orders, Products: products}
}

// Adjust runs a full adjustment in its own transaction.
func (s *StockService) Adjust(orderID, direction string) error {
	tx, err := s.Orders.DB.Beginx()
	if err != nil {
		return &StoreError{Op: "begin stock adjustment", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.AdjustTx(tx, orderID, direction); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit stock adjustment", Err: err}
	}
	return nil
}

// AdjustTx applies the adjustment inside the caller's transaction, so checkout
// and status transitions can make stock and their own writes atomic together.
func (s *StockService) AdjustTx(tx *sqlx.Tx, orderID, direction string) error {
	items, err := s.Orders.ItemQtysTx(tx, orderID)
	if err != nil {
		return &StoreError{Op: "load order items", Err: err}
	}
	for _, it := range items {
		switch direction {
		case StockDecrement:
			err = s.Products.DecrementStockTx(tx, it.ProductID, it.Qty)
		case StockRestore:
			err = s.Products.RestoreStockTx(tx, it.ProductID, it.Qty)
		default:
			return fmt.Errorf("unknown stock direction %q", direction)
		}
		if err != nil {
			return &StoreError{Op: "adjust stock for " + it.ProductID, Err: err}
		}
	}
	return nil
}
