package router

import (
	"legalease-api/core/constants"
	"legalease-api/core/middleware"
	"legalease-api/modules/billing/controller"

	"github.com/labstack/echo/v4"
)

type BillingRouter struct {
	controller *controller.BillingController
}

func NewBillingRouter(controller *controller.BillingController) *BillingRouter {
	return &BillingRouter{controller: controller}
}

func (r *BillingRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/billing", mw.AuthMiddleware())
	group.GET("/earnings", r.controller.GetMyEarnings, mw.RequireRole(constants.RoleProvider))
	group.GET("/invoices", r.controller.GetMyInvoices)
}
