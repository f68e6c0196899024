package controller

import (
	"legalease-api/core/constants"
	"legalease-api/core/controller"
	"legalease-api/core/errors"
	"legalease-api/core/utils"
	"legalease-api/modules/availability/dto"
	"legalease-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles slot HTTP requests
type AvailabilityController struct {
	controller.BaseController
	service service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *AvailabilityController) getProviderIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// ListSlots handles GET /availability
// @Summary List my availability
// @Description Lists the provider's slots; type=upcoming (default) or type=history
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param type query string false "upcoming or history"
// @Success 200 {array} dto.SlotResponse
// @Failure 401 {object} errors.AppError
// @Router /private/availability [get]
func (c *AvailabilityController) ListSlots(ctx echo.Context) error {
	providerID, err := c.getProviderIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.service.ListSlots(ctx.Request().Context(), providerID, ctx.QueryParam("type"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CreateSlots handles POST /availability
// @Summary Declare availability
// @Description Declares the same bookable window on one or more dates
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotsRequest true "Dates and window"
// @Success 201 {object} dto.CreateSlotsResponse
// @Failure 422 {object} errors.AppError
// @Router /private/availability [post]
func (c *AvailabilityController) CreateSlots(ctx echo.Context) error {
	providerID, err := c.getProviderIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.UnprocessableEntity(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.service.CreateSlots(ctx.Request().Context(), providerID, &req)
	if appErr != nil {
		if appErr.Code == errors.ErrInvalidInput {
			return c.UnprocessableEntity(appErr.Code, appErr.Message)
		}
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Slots created")
}

// UpdateSlot handles PUT /availability/:id
// @Summary Reschedule a slot
// @Description Overwrites a slot's window; blocked while appointments reference it
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body dto.UpdateSlotRequest true "New window"
// @Success 200 {object} dto.SlotResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/availability/{id} [put]
func (c *AvailabilityController) UpdateSlot(ctx echo.Context) error {
	providerID, err := c.getProviderIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	var req dto.UpdateSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.service.UpdateSlot(ctx.Request().Context(), providerID, slotID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slot updated")
}

// DeleteSlot handles DELETE /availability/:id
// @Summary Delete a slot
// @Description Removes a slot with no pending or confirmed appointment
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/availability/{id} [delete]
func (c *AvailabilityController) DeleteSlot(ctx echo.Context) error {
	providerID, err := c.getProviderIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	slotID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID")
	}

	if appErr := c.service.DeleteSlot(ctx.Request().Context(), providerID, slotID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Slot deleted")
}
