package router

import (
	"legalease-api/core/constants"
	"legalease-api/core/middleware"
	"legalease-api/modules/appointment/controller"

	"github.com/labstack/echo/v4"
)

type AppointmentRouter struct {
	controller *controller.AppointmentController
}

func NewAppointmentRouter(controller *controller.AppointmentController) *AppointmentRouter {
	return &AppointmentRouter{controller: controller}
}

func (r *AppointmentRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/appointments", mw.AuthMiddleware())
	group.GET("", r.controller.ListAppointments)
	group.GET("/:id", r.controller.GetAppointment)
	group.POST("", r.controller.CreateAppointment, mw.RequireRole(constants.RoleCustomer))
	group.PUT("/:id/cancel", r.controller.CancelAppointment, mw.RequireRole(constants.RoleCustomer))
	group.PUT("/:id", r.controller.DecideAppointment, mw.RequireRole(constants.RoleProvider))
	group.POST("/:id/complete", r.controller.CompleteAppointment, mw.RequireRole(constants.RoleProvider))
}
