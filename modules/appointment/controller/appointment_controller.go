package controller

import (
	"legalease-api/core/constants"
	"legalease-api/core/controller"
	"legalease-api/core/errors"
	"legalease-api/core/params"
	"legalease-api/core/utils"
	"legalease-api/modules/appointment/dto"
	"legalease-api/modules/appointment/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AppointmentController handles appointment HTTP requests
type AppointmentController struct {
	controller.BaseController
	service service.AppointmentServiceInterface
}

func NewAppointmentController(svc service.AppointmentServiceInterface) *AppointmentController {
	return &AppointmentController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *AppointmentController) getActorFromContext(ctx echo.Context) (service.Actor, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return service.Actor{}, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return service.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// CreateAppointment handles POST /appointments
// @Summary Book an appointment
// @Description Reserves a sub-interval of a slot and charges the customer in one step
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Booking details"
// @Success 201 {object} dto.CreateAppointmentResponse
// @Failure 409 {object} errors.AppError
// @Failure 422 {object} errors.AppError
// @Router /private/appointments [post]
func (c *AppointmentController) CreateAppointment(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateAppointmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.UnprocessableEntity(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.service.Reserve(ctx.Request().Context(), actor, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Appointment created")
}

// GetAppointment handles GET /appointments/:id
// @Summary Appointment detail
// @Description Returns an appointment with its fee breakdown; parties only
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/appointments/{id} [get]
func (c *AppointmentController) GetAppointment(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	result, appErr := c.service.GetDetail(ctx.Request().Context(), actor, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListAppointments handles GET /appointments
// @Summary List my appointments
// @Description Lists the caller's appointments, newest first
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedAppointmentResponse
// @Router /private/appointments [get]
func (c *AppointmentController) ListAppointments(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.service.ListMine(ctx.Request().Context(), actor, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DecideAppointment handles POST /appointments/:id/decision
// @Summary Approve or reject a request
// @Description Provider confirms a pending request or declines it with a full refund
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.DecisionRequest true "approve or reject"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 409 {object} errors.AppError
// @Router /private/appointments/{id} [put]
func (c *AppointmentController) DecideAppointment(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	var req dto.DecisionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.UnprocessableEntity(errors.ErrInvalidRequestData, err.Error())
	}

	var result *dto.AppointmentResponse
	var appErr *errors.AppError
	if req.Action == "approve" {
		result, appErr = c.service.Approve(ctx.Request().Context(), actor, id)
	} else {
		result, appErr = c.service.Reject(ctx.Request().Context(), actor, id)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Decision recorded")
}

// CancelAppointment handles POST /appointments/:id/cancel
// @Summary Cancel my booking
// @Description Customer cancels at least 24 hours before start; service fee is forfeited
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CancelRequest true "Cancellation reason"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/appointments/{id}/cancel [put]
func (c *AppointmentController) CancelAppointment(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	var req dto.CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.UnprocessableEntity(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.service.CancelByCustomer(ctx.Request().Context(), actor, id, req.Reason)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Appointment cancelled")
}

// CompleteAppointment handles POST /appointments/:id/complete
// @Summary Complete a session
// @Description Provider settles a confirmed appointment after its end time
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/appointments/{id}/complete [post]
func (c *AppointmentController) CompleteAppointment(ctx echo.Context) error {
	actor, err := c.getActorFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid appointment ID")
	}

	result, appErr := c.service.Complete(ctx.Request().Context(), actor, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Appointment completed")
}
