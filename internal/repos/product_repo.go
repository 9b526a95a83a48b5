package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"threadvibe/internal/domain"
)

type ProductRepo struct{ DB *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = `
  id, name, COALESCE(description,'') AS description, COALESCE(category,'') AS category,
  price, stock, featured, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.DB.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ListNewest returns products newest-first, the ordering the admin table uses.
func (r *ProductRepo) ListNewest(limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.DB.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) ListFeatured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.DB.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE featured = 1
	  ORDER BY created_at DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// Search matches name or category, case-insensitive.
func (r *ProductRepo) Search(q string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	pat := "%" + q + "%"
	err := r.DB.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, pat, pat, limit, offset)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.DB.NamedExec(`
	  INSERT INTO products(id, name, description, category, price, stock, featured, created_at)
	  VALUES(:id, :name, :description, :category, :price, :stock, :featured, CURRENT_TIMESTAMP)
	`, p)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.DB.NamedExec(`
	  UPDATE products
	  SET name = :name, description = :description, category = :category,
	      price = :price, stock = :stock, featured = :featured,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = :id
	`, p)
	return err
}

// DeleteCascade removes a product and its images in one transaction, images
// first (product_images FK is RESTRICT).
func (r *ProductRepo) DeleteCascade(id string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ---------- Images ----------

// Images returns a product's images primary-first, then insertion order, so the
// first row is the display image.
func (r *ProductRepo) Images(productID string) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.DB.Select(&out, `
	  SELECT id, product_id, url, is_primary, COALESCE(alt_text,'') AS alt_text
	  FROM product_images
	  WHERE product_id = ?
	  ORDER BY is_primary DESC, created_at, id
	`, productID)
	return out, err
}

// ReplaceImagesTx swaps a product's image set: delete existing rows, insert the
// new ones in order. The caller marks which row is primary.
func (r *ProductRepo) ReplaceImagesTx(tx *sqlx.Tx, productID string, imgs []domain.ProductImage) error {
	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ?`, productID); err != nil {
		return err
	}
	for _, img := range imgs {
		if _, err := tx.Exec(`
		  INSERT INTO product_images(id, product_id, url, is_primary, alt_text)
		  VALUES(?, ?, ?, ?, ?)
		`, img.ID, productID, img.URL, img.IsPrimary, img.AltText); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Stock primitives ----------

// DecrementStockTx subtracts qty from a product's stock in a single conditional
// update, clamped at zero. Over-decrement is absorbed, never an error; a
// missing product is.
func (r *ProductRepo) DecrementStockTx(tx *sqlx.Tx, productID string, qty int) error {
	res, err := tx.Exec(`
	  UPDATE products
	  SET stock = MAX(0, stock - ?), updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, qty, productID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", productID)
	}
	return nil
}

// RestoreStockTx adds qty back to a product's stock. No ceiling.
func (r *ProductRepo) RestoreStockTx(tx *sqlx.Tx, productID string, qty int) error {
	res, err := tx.Exec(`
	  UPDATE products
	  SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, qty, productID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", productID)
	}
	return nil
}
