package router

import (
	"legalease-api/core/constants"
	"legalease-api/core/middleware"
	"legalease-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(controller *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{controller: controller}
}

func (r *AvailabilityRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/availability", mw.AuthMiddleware(), mw.RequireRole(constants.RoleProvider))
	group.GET("", r.controller.ListSlots)
	group.POST("", r.controller.CreateSlots)
	group.PUT("/:id", r.controller.UpdateSlot)
	group.DELETE("/:id", r.controller.DeleteSlot)
}
