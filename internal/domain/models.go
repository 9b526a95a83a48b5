package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Featured    bool            `db:"featured"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

type ProductImage struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	URL       string `db:"url"`
	IsPrimary bool   `db:"is_primary"`
	AltText   string `db:"alt_text"`
}

type Customer struct {
	ID         string `db:"id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Phone      string `db:"phone"`
	Address    string `db:"address_line1"`
	City       string `db:"city"`
	State      string `db:"state"`
	PostalCode string `db:"postal_code"`
	Country    string `db:"country"`
	CreatedAt  string `db:"created_at"`
}

type Order struct {
	ID             string          `db:"id"`
	CustomerID     *string         `db:"customer_id"` // NULL for guest orders
	Status         string          `db:"status"`
	Total          decimal.Decimal `db:"total_amount"`
	ShipAddress    string          `db:"shipping_address"`
	ShipCity       string          `db:"shipping_city"`
	ShipState      string          `db:"shipping_state"`
	ShipPostalCode string          `db:"shipping_postal_code"`
	ShipCountry    string          `db:"shipping_country"`
	PaymentMethod  string          `db:"payment_method"`
	CreatedAt      string          `db:"created_at"`
	UpdatedAt      string          `db:"updated_at"`
}

type OrderItem struct {
	ID        string          `db:"id"`
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	VariantID *string         `db:"variant_id"`
	Qty       int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"` // frozen at order time, never rewritten
	CreatedAt string          `db:"created_at"`
}
