package handlers

import (
	"threadvibe/internal/config"
	"threadvibe/internal/events"
	"threadvibe/internal/repos"
	"threadvibe/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CheckoutHandler *CheckoutHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, bus *events.Bus) *Deps {
	prodRepo := repos.NewProductRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, bus)
	stockSvc := services.NewStockService(orderRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(custRepo, orderRepo, stockSvc,
		services.SimulatedAuthorizer{Delay: cfg.PaymentDelay}, bus)
	statusSvc := services.NewStatusService(orderRepo, stockSvc, bus)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Auth: auth},
		AdminHandler: &AdminHandler{
			OrderRepo: orderRepo,
			Customers: custRepo,
			Catalog:   catalogSvc,
			Status:    statusSvc,
		},
	}
}
