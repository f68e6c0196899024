package appointment

import (
	"legalease-api/core/database"
	"legalease-api/core/middleware"
	"legalease-api/modules/appointment/controller"
	"legalease-api/modules/appointment/repository"
	"legalease-api/modules/appointment/router"
	"legalease-api/modules/appointment/service"
	availabilityRepo "legalease-api/modules/availability/repository"
	billingRepo "legalease-api/modules/billing/repository"
	providerService "legalease-api/modules/provider/service"

	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Group,
	db database.Database,
	mw *middleware.Middleware,
	providers providerService.ProviderServiceInterface,
	notifier service.Notifier,
) service.AppointmentServiceInterface {
	repo := repository.NewAppointmentRepository(db)
	slots := availabilityRepo.NewSlotRepository(db)
	invoices := billingRepo.NewInvoiceRepository(db)

	svc := service.NewAppointmentService(repo, slots, invoices, providers, notifier)
	ctrl := controller.NewAppointmentController(svc)

	router.NewAppointmentRouter(ctrl).Register(e, mw)

	return svc
}
