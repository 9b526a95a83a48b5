package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"threadvibe/internal/domain"
	"threadvibe/internal/events"
	"threadvibe/internal/repos"
	"threadvibe/internal/services"
)

func TestCatalog_SaveProductWithImages(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), events.NewBus())

	id, err := svc.SaveProduct(domain.Product{
		Name:     "Classic Crew Tee",
		Category: "tshirts",
		Price:    decimal.NewFromInt(2500),
		Stock:    40,
	}, []string{"products/tee/front.jpg", "products/tee/back.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	view, err := svc.GetProduct(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Images) != 2 {
		t.Fatalf("want 2 images, got %d", len(view.Images))
	}
	// First URL is primary and sorts first.
	if !view.Images[0].IsPrimary || view.Images[0].URL != "products/tee/front.jpg" {
		t.Fatalf("bad primary image: %+v", view.Images[0])
	}
	if view.Images[1].IsPrimary {
		t.Fatal("only one image may be primary")
	}
	if view.Images[0].AltText != "Classic Crew Tee - image 1" {
		t.Fatalf("bad alt text: %q", view.Images[0].AltText)
	}
}

func TestCatalog_UpdateReplacesImageSet(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), events.NewBus())

	p := domain.Product{Name: "Field Jacket", Category: "outerwear", Price: decimal.NewFromInt(12900), Stock: 8}
	id, err := svc.SaveProduct(p, []string{"a.jpg", "b.jpg", "c.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	p.ID = id
	if _, err := svc.SaveProduct(p, []string{"new.jpg"}); err != nil {
		t.Fatal(err)
	}

	view, err := svc.GetProduct(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Images) != 1 || view.Images[0].URL != "new.jpg" || !view.Images[0].IsPrimary {
		t.Fatalf("image set not replaced: %+v", view.Images)
	}
}

func TestCatalog_DeleteCascadesImages(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), events.NewBus())

	id, err := svc.SaveProduct(domain.Product{
		Name: "Denim Dad Cap", Category: "accessories",
		Price: decimal.NewFromInt(1800), Stock: 25,
	}, []string{"cap.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteProduct(id); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM product_images`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("images must be deleted with their product, found %d", n)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("product must be deleted, found %d", n)
	}
}

func TestCatalog_SearchMatchesNameAndCategory(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), events.NewBus())

	for _, p := range []domain.Product{
		{Name: "Classic Crew Tee", Category: "tshirts", Price: decimal.NewFromInt(2500)},
		{Name: "Ash Pullover Hoodie", Category: "hoodies", Price: decimal.NewFromInt(6900)},
	} {
		if _, err := svc.SaveProduct(p, nil); err != nil {
			t.Fatal(err)
		}
	}

	byName, err := svc.ListProducts("crew", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].Name != "Classic Crew Tee" {
		t.Fatalf("bad name search: %+v", byName)
	}

	byCat, err := svc.ListProducts("hood", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat) != 1 || byCat[0].Name != "Ash Pullover Hoodie" {
		t.Fatalf("bad category search: %+v", byCat)
	}
}
