package service

import (
	"context"

	"github.com/google/uuid"

	"legalease-api/core/errors"
	"legalease-api/core/params"
	"legalease-api/modules/billing/dto"
	"legalease-api/modules/billing/entity"
	"legalease-api/modules/billing/repository"
	"legalease-api/modules/billing/settlement"
)

type BillingService struct {
	invoices repository.InvoiceRepositoryInterface
	earnings repository.EarningsRepositoryInterface
}

type BillingServiceInterface interface {
	GetMyEarnings(ctx context.Context, providerID uuid.UUID) (*dto.EarningsResponse, *errors.AppError)
	GetMyInvoices(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedInvoiceEntity, *errors.AppError)
	FeeBreakdown(inv *entity.Invoice) *dto.FeeBreakdown
}

func NewBillingService(invoices repository.InvoiceRepositoryInterface, earnings repository.EarningsRepositoryInterface) BillingServiceInterface {
	return &BillingService{invoices: invoices, earnings: earnings}
}

func (s *BillingService) GetMyEarnings(ctx context.Context, providerID uuid.UUID) (*dto.EarningsResponse, *errors.AppError) {
	earnings, err := s.earnings.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get earnings", err)
	}
	return dto.ToEarningsResponse(earnings), nil
}

func (s *BillingService) GetMyInvoices(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedInvoiceEntity, *errors.AppError) {
	result, err := s.invoices.GetByUserID(ctx, userID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get invoices", err)
	}
	return result, nil
}

// FeeBreakdown derives the display money split from a stored invoice.
func (s *BillingService) FeeBreakdown(inv *entity.Invoice) *dto.FeeBreakdown {
	if inv == nil {
		return nil
	}
	return &dto.FeeBreakdown{
		Total:           inv.Amount,
		ConsultationFee: settlement.Round(settlement.ConsultationFeeFromTotal(inv.Amount)),
		ServiceFee:      settlement.Round(settlement.ServiceFee(inv.Amount)),
		RefundAmount:    inv.RefundAmount,
	}
}
