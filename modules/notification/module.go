package notification

import (
	"legalease-api/core/database"
	"legalease-api/core/middleware"
	"legalease-api/modules/notification/controller"
	"legalease-api/modules/notification/repository"
	"legalease-api/modules/notification/router"
	"legalease-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}
