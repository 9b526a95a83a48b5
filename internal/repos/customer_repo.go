package repos

import (
	"github.com/jmoiron/sqlx"

	"threadvibe/internal/domain"
)

type CustomerRepo struct{ DB *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.DB.Get(&c, `
	  SELECT id, first_name, last_name, COALESCE(phone,'') AS phone,
	         COALESCE(address_line1,'') AS address_line1, COALESCE(city,'') AS city,
	         COALESCE(state,'') AS state, COALESCE(postal_code,'') AS postal_code,
	         COALESCE(country,'') AS country, created_at
	  FROM customers WHERE id = ?
	`, id)
	return c, err
}

// CreateGuestTx inserts an anonymous customer row from checkout form data.
func (r *CustomerRepo) CreateGuestTx(tx *sqlx.Tx, c domain.Customer) error {
	_, err := tx.NamedExec(`
	  INSERT INTO customers(id, first_name, last_name, phone, address_line1, city, state, postal_code, country)
	  VALUES(:id, :first_name, :last_name, :phone, :address_line1, :city, :state, :postal_code, :country)
	`, c)
	return err
}

// UpsertShippingTx writes a customer's details keyed by id, creating the row on
// a shopper's first checkout and overwriting it after (last submission wins).
func (r *CustomerRepo) UpsertShippingTx(tx *sqlx.Tx, c domain.Customer) error {
	_, err := tx.NamedExec(`
	  INSERT INTO customers(id, first_name, last_name, phone, address_line1, city, state, postal_code, country)
	  VALUES(:id, :first_name, :last_name, :phone, :address_line1, :city, :state, :postal_code, :country)
	  ON CONFLICT(id) DO UPDATE SET
	    first_name = excluded.first_name, last_name = excluded.last_name,
	    phone = excluded.phone, address_line1 = excluded.address_line1,
	    city = excluded.city, state = excluded.state,
	    postal_code = excluded.postal_code, country = excluded.country
	`, c)
	return err
}
