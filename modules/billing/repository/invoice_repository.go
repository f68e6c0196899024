package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/core/params"
	"legalease-api/modules/billing/entity"
)

type InvoiceRepository struct {
	db database.Database
}

func NewInvoiceRepository(db database.Database) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type InvoiceRepositoryInterface interface {
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Invoice, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedInvoiceEntity, error)
}

// GetByAppointmentID returns the invoice tied to an appointment, or nil if
// the booking was never paid (or the invoice was deleted on cancellation).
func (r *InvoiceRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Invoice, error) {
	query := `
		SELECT id, user_id, appointment_id, amount, refund_amount, status,
		       transaction_ref, payment_method, created_at
		FROM invoices WHERE appointment_id = $1
	`

	var invoice entity.Invoice
	err := r.db.GetContext(ctx, &invoice, query, appointmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InvoiceRepository:GetByAppointmentID", err)
		return nil, err
	}

	return &invoice, nil
}

func (r *InvoiceRepository) GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedInvoiceEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	baseQuery := `FROM invoices WHERE user_id = $1`

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, userID)
	if err != nil {
		logger.Error("InvoiceRepository:GetByUserID:Count", err)
		return nil, err
	}

	query := `
		SELECT id, user_id, appointment_id, amount, refund_amount, status,
		       transaction_ref, payment_method, created_at ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var invoices []entity.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, userID, params.PageSize, offset)
	if err != nil {
		logger.Error("InvoiceRepository:GetByUserID:Select", err)
		return nil, err
	}

	return &entity.PaginatedInvoiceEntity{
		Items:      invoices,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}
