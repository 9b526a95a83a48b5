package handlers

import (
	"threadvibe/internal/log"
	"threadvibe/internal/services"
	"threadvibe/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.FeaturedProducts(8)
	if err != nil {
		log.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "index", fiber.Map{"Featured": featured})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(q, page, 12)
	if err != nil {
		log.Error(c, "products.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "products", fiber.Map{"Products": products, "Query": q, "Page": page})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}
