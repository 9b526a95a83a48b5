package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"threadvibe/internal/domain"
	applog "threadvibe/internal/log"
	"threadvibe/internal/repos"
	"threadvibe/internal/services"
	"threadvibe/internal/validate"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Customers *repos.CustomerRepo
	Catalog   *services.CatalogService
	Status    *services.StatusService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// ---------- Orders ----------

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.OrderRepo.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Customer info defaults to the guest placeholder when the order has no
	// customer reference (or the row is gone).
	customer := domain.Customer{FirstName: "Guest", LastName: "User"}
	if o.CustomerID != nil {
		if cust, err := h.Customers.Get(*o.CustomerID); err == nil {
			customer = cust
		} else {
			applog.Error(c, "admin.order.customer.fail", err, map[string]any{"order_id": id})
		}
	}

	return render(c, "admin_order", fiber.Map{
		"Order":       o,
		"Items":       items,
		"Customer":    customer,
		"StatusLabel": domain.StatusLabel(o.Status),
	})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := strings.TrimSpace(c.FormValue("status"))
	if !ok || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Status.Update(id, status); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			applog.Security(c, "admin.orders.status.invalid", map[string]any{"order_id": id, "status": status})
			return c.Status(400).SendString(verr.Error())
		}
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders/" + id)
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	q := c.Query("q")
	page := c.QueryInt("page", 1)
	products, err := h.Catalog.ListProducts(q, page, 6)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{"Products": products, "Query": q, "Page": page})
}

// POST /admin/products saves a new or existing product plus its image list.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	category := strings.TrimSpace(c.FormValue("category"))
	price, perr := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	stock, serr := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if name == "" || category == "" || perr != nil || serr != nil || price.IsNegative() || stock < 0 {
		applog.Security(c, "admin.products.save.invalid", nil)
		return c.Status(400).SendString("invalid product data")
	}

	p := domain.Product{
		ID:          strings.TrimSpace(c.FormValue("id")), // empty means create
		Name:        name,
		Description: c.FormValue("description"),
		Category:    category,
		Price:       price,
		Stock:       stock,
		Featured:    c.FormValue("featured") == "on",
	}

	var urls []string
	for _, u := range strings.Split(c.FormValue("image_urls"), "\n") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}

	id, err := h.Catalog.SaveProduct(p, urls)
	if err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": p.ID})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": id, "images": len(urls)})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}
