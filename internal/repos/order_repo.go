package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"threadvibe/internal/domain"
)

type OrderRepo struct{ DB *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{DB: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID        string          `db:"id"`
	Status    string          `db:"status"`
	Total     decimal.Decimal `db:"total_amount"`
	Customer  string          `db:"customer"` // "Guest User" when no customer row
	CreatedAt string          `db:"created_at"`
}

// ---------- Order detail (admin order page / confirmation) ----------
type OrderItemRow struct {
	ID          string          `db:"id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Qty         int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Subtotal    decimal.Decimal `db:"subtotal"`
}

func (r *OrderRepo) CreateTx(tx *sqlx.Tx, o domain.Order) error {
	_, err := tx.NamedExec(`
	  INSERT INTO orders
	    (id, customer_id, status, total_amount, shipping_address, shipping_city,
	     shipping_state, shipping_postal_code, shipping_country, payment_method, created_at)
	  VALUES
	    (:id, :customer_id, :status, :total_amount, :shipping_address, :shipping_city,
	     :shipping_state, :shipping_postal_code, :shipping_country, :payment_method, CURRENT_TIMESTAMP)
	`, o)
	return err
}

func (r *OrderRepo) InsertItemTx(tx *sqlx.Tx, it domain.OrderItem) error {
	_, err := tx.NamedExec(`
	  INSERT INTO order_items(id, order_id, product_id, variant_id, quantity, price, created_at)
	  VALUES(:id, :order_id, :product_id, :variant_id, :quantity, :price, CURRENT_TIMESTAMP)
	`, it)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []OrderItemRow, error) {
	var o domain.Order
	if err := r.DB.Get(&o, `
	  SELECT id, customer_id, status, total_amount, shipping_address, shipping_city,
	         shipping_state, shipping_postal_code, shipping_country,
	         COALESCE(payment_method,'') AS payment_method,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []OrderItemRow
	if err := r.DB.Select(&items, `
	  SELECT oi.id, oi.product_id, p.name AS product_name, oi.quantity, oi.price,
	         (oi.quantity * oi.price) AS subtotal
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.created_at, oi.id
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) Status(orderID string) (string, error) {
	var s string
	err := r.DB.Get(&s, `SELECT status FROM orders WHERE id = ?`, orderID)
	return s, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.DB.Select(&out, `
	  SELECT o.id, o.status, o.total_amount,
	         COALESCE(c.first_name || ' ' || c.last_name, 'Guest User') AS customer,
	         o.created_at
	  FROM orders o
	  LEFT JOIN customers c ON c.id = o.customer_id
	  ORDER BY datetime(o.created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatusTx writes the new status only while the row still holds the
// status the caller observed, and bumps updated_at. The affected-row count
// lets callers tell a missing order or a concurrent change apart from success,
// so two racing transitions cannot both apply their side effects.
func (r *OrderRepo) UpdateStatusTx(tx *sqlx.Tx, orderID, status, observed string) (int64, error) {
	res, err := tx.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, status, orderID, observed)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ---------- Stock adjustment inputs ----------

type ItemQty struct {
	ProductID string `db:"product_id"`
	Qty       int    `db:"quantity"`
}

// ItemQtysTx reads the (product, quantity) pairs of an order inside the
// caller's transaction.
func (r *OrderRepo) ItemQtysTx(tx *sqlx.Tx, orderID string) ([]ItemQty, error) {
	var out []ItemQty
	err := tx.Select(&out, `
	  SELECT product_id, quantity FROM order_items WHERE order_id = ?
	`, orderID)
	return out, err
}
