package services

import (
	"fmt"

	"github.com/google/uuid"

	"threadvibe/internal/domain"
	"threadvibe/internal/events"
	"threadvibe/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Bus   *events.Bus
}

func NewCatalogService(prods *repos.ProductRepo, bus *events.Bus) *CatalogService {
	return &CatalogService{Prods: prods, Bus: bus}
}

// ProductView pairs a product with its images, primary first.
type ProductView struct {
	domain.Product
	Images []domain.ProductImage
}

func (s *CatalogService) GetProduct(id string) (ProductView, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductView{}, err
	}
	imgs, err := s.Prods.Images(id)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{Product: p, Images: imgs}, nil
}

func (s *CatalogService) ListProducts(q string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	if q != "" {
		return s.Prods.Search(q, pageSize, offset)
	}
	return s.Prods.ListNewest(pageSize, offset)
}

func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Prods.ListFeatured(limit)
}

// SaveProduct creates or updates a product and replaces its image set. The
// first URL becomes the primary image; alt text is derived from the name.
func (s *CatalogService) SaveProduct(p domain.Product, imageURLs []string) (string, error) {
	created := p.ID == ""
	if created {
		p.ID = uuid.NewString()
		if err := s.Prods.Create(p); err != nil {
			return "", &StoreError{Op: "create product", Err: err}
		}
	} else {
		if err := s.Prods.Update(p); err != nil {
			return "", &StoreError{Op: "update product", Err: err}
		}
	}

	if len(imageURLs) > 0 {
		imgs := make([]domain.ProductImage, 0, len(imageURLs))
		for i, url := range imageURLs {
			imgs = append(imgs, domain.ProductImage{
				ID:        uuid.NewString(),
				ProductID: p.ID,
				URL:       url,
				IsPrimary: i == 0,
				AltText:   fmt.Sprintf("%s - image %d", p.Name, i+1),
			})
		}
		tx, err := s.Prods.DB.Beginx()
		if err != nil {
			return "", &StoreError{Op: "begin image save", Err: err}
		}
		defer func() { _ = tx.Rollback() }()
		if err := s.Prods.ReplaceImagesTx(tx, p.ID, imgs); err != nil {
			return "", &StoreError{Op: "save product images", Err: err}
		}
		if err := tx.Commit(); err != nil {
			return "", &StoreError{Op: "commit image save", Err: err}
		}
	}

	s.Bus.Invalidate(events.KeyAdminProducts)
	return p.ID, nil
}

// DeleteProduct removes a product, images first.
func (s *CatalogService) DeleteProduct(id string) error {
	if err := s.Prods.DeleteCascade(id); err != nil {
		return &StoreError{Op: "delete product", Err: err}
	}
	s.Bus.Invalidate(events.KeyAdminProducts)
	return nil
}
