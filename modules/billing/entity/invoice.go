package entity

import (
	"time"

	"github.com/google/uuid"

	coreEntity "legalease-api/core/entity"
)

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusSuccess       InvoiceStatus = "success"
	InvoiceStatusRefundPending InvoiceStatus = "refund_pending"
)

// Invoice is the financial record tied 1:1 to an appointment. Amount is
// fixed at creation; only RefundAmount and Status change afterwards.
type Invoice struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"user_id"`
	AppointmentID  *uuid.UUID    `db:"appointment_id" json:"appointment_id,omitempty"`
	Amount         float64       `db:"amount" json:"amount"`
	RefundAmount   float64       `db:"refund_amount" json:"refund_amount"`
	Status         InvoiceStatus `db:"status" json:"status"`
	TransactionRef string        `db:"transaction_ref" json:"transaction_ref"`
	PaymentMethod  string        `db:"payment_method" json:"payment_method"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

type PaginatedInvoiceEntity = coreEntity.Pagination[Invoice]
