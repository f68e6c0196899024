package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/errors"
	"legalease-api/core/logger"
	"legalease-api/core/params"
	"legalease-api/modules/appointment/dto"
	"legalease-api/modules/appointment/repository"
	availabilityRepo "legalease-api/modules/availability/repository"
	billingRepo "legalease-api/modules/billing/repository"
	providerService "legalease-api/modules/provider/service"
)

// Actor identifies who is performing an engine call. Every operation gets
// it explicitly; there is no ambient session state in the core.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// Notifier is the sink for user-facing alerts. Dispatch is best-effort
// and happens only after the business transaction has committed.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, link string)
}

// AppointmentService is the reservation and lifecycle engine.
type AppointmentService struct {
	repo      repository.AppointmentRepositoryInterface
	slots     availabilityRepo.SlotRepositoryInterface
	invoices  billingRepo.InvoiceRepositoryInterface
	providers providerService.ProviderServiceInterface
	notifier  Notifier
	now       func() time.Time
}

type AppointmentServiceInterface interface {
	Reserve(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, *errors.AppError)
	GetDetail(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError)
	ListMine(ctx context.Context, actor Actor, queryParams params.QueryParams) (*dto.PaginatedAppointmentResponse, *errors.AppError)
	Approve(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError)
	Reject(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError)
	CancelByCustomer(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*dto.AppointmentResponse, *errors.AppError)
	Complete(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError)
	Sweep(ctx context.Context, providerID *uuid.UUID) (int, error)
}

func NewAppointmentService(
	repo repository.AppointmentRepositoryInterface,
	slots availabilityRepo.SlotRepositoryInterface,
	invoices billingRepo.InvoiceRepositoryInterface,
	providers providerService.ProviderServiceInterface,
	notifier Notifier,
) AppointmentServiceInterface {
	return &AppointmentService{
		repo:      repo,
		slots:     slots,
		invoices:  invoices,
		providers: providers,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AppointmentService) notify(ctx context.Context, userID uuid.UUID, title, message, link string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, userID, title, message, link)
}

// sweepQuietly runs the expiration sweeper before a read or mutation.
// Failures are logged, never surfaced; the caller's operation proceeds.
func (s *AppointmentService) sweepQuietly(ctx context.Context, providerID *uuid.UUID) {
	if _, err := s.Sweep(ctx, providerID); err != nil {
		logger.Warn("AppointmentService:sweepQuietly", "error", err)
	}
}
