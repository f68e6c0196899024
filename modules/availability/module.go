package availability

import (
	"legalease-api/core/database"
	"legalease-api/core/middleware"
	"legalease-api/modules/availability/controller"
	"legalease-api/modules/availability/repository"
	"legalease-api/modules/availability/router"
	"legalease-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) service.AvailabilityServiceInterface {
	repo := repository.NewSlotRepository(db)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Register(e, mw)

	return svc
}
