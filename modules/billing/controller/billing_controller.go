package controller

import (
	"legalease-api/core/constants"
	"legalease-api/core/controller"
	"legalease-api/core/errors"
	"legalease-api/core/params"
	"legalease-api/core/utils"
	"legalease-api/modules/billing/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BillingController struct {
	controller.BaseController
	service service.BillingServiceInterface
}

func NewBillingController(svc service.BillingServiceInterface) *BillingController {
	return &BillingController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *BillingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// GetMyEarnings handles GET /billing/earnings
// @Summary Provider earnings ledger
// @Description Returns the provider's running completed-match and payout totals
// @Tags Billing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.EarningsResponse
// @Failure 401 {object} errors.AppError
// @Router /private/billing/earnings [get]
func (c *BillingController) GetMyEarnings(ctx echo.Context) error {
	providerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.service.GetMyEarnings(ctx.Request().Context(), providerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyInvoices handles GET /billing/invoices
// @Summary List my invoices
// @Description Returns the authenticated user's invoices, newest first
// @Tags Billing
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.AppError
// @Router /private/billing/invoices [get]
func (c *BillingController) GetMyInvoices(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	queryParams := params.NewQueryParams(ctx)
	result, appErr := c.service.GetMyInvoices(ctx.Request().Context(), userID, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
