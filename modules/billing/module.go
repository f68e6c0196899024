package billing

import (
	"legalease-api/core/database"
	"legalease-api/core/middleware"
	"legalease-api/modules/billing/controller"
	"legalease-api/modules/billing/repository"
	"legalease-api/modules/billing/router"
	"legalease-api/modules/billing/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) service.BillingServiceInterface {
	invoiceRepo := repository.NewInvoiceRepository(db)
	earningsRepo := repository.NewEarningsRepository(db)
	svc := service.NewBillingService(invoiceRepo, earningsRepo)
	ctrl := controller.NewBillingController(svc)

	router.NewBillingRouter(ctrl).Register(e, mw)

	return svc
}
