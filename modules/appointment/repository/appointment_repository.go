package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/core/params"
	"legalease-api/modules/appointment/entity"
	billingEntity "legalease-api/modules/billing/entity"
)

// Sentinel errors surfaced from locked transactions. The service layer
// maps them onto the API error taxonomy.
var (
	ErrSlotNotFound   = errors.New("slot not found")
	ErrOverlap        = errors.New("slot time range overlaps an existing appointment")
	ErrStatusConflict = errors.New("appointment status changed concurrently")
	ErrNotFound       = errors.New("appointment not found")
)

type AppointmentRepository struct {
	db database.Database
}

func NewAppointmentRepository(db database.Database) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type AppointmentRepositoryInterface interface {
	Reserve(ctx context.Context, appt *entity.Appointment, invoice *billingEntity.Invoice) error
	GetWithSlot(ctx context.Context, id uuid.UUID) (*entity.AppointmentWithSlot, error)
	ListByUser(ctx context.Context, role string, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedAppointmentEntity, error)
	Approve(ctx context.Context, id uuid.UUID) error
	MarkRefundPending(ctx context.Context, id uuid.UUID, refundAmount float64, noteSuffix string, from []entity.AppointmentStatus) error
	CancelUnpaid(ctx context.Context, id uuid.UUID, noteSuffix string, from []entity.AppointmentStatus) error
	Complete(ctx context.Context, id uuid.UUID, commissionFee, providerNet float64) error
	ListExpiredPending(ctx context.Context, providerID *uuid.UUID, today time.Time, nowClock string) ([]entity.AppointmentWithSlot, error)
	DeleteExpiredUnpaid(ctx context.Context, id uuid.UUID) error
}

// lockedSlot is the slot state read under FOR UPDATE during a reservation.
type lockedSlot struct {
	ID         uuid.UUID `db:"id"`
	ProviderID uuid.UUID `db:"provider_id"`
	Date       time.Time `db:"date"`
}

// Reserve inserts the appointment and its invoice atomically. The owning
// slot row is locked for the whole transaction, so concurrent attempts on
// the same slot serialize and the overlap check always sees committed
// rows. Returns ErrSlotNotFound or ErrOverlap on the respective conflicts.
func (r *AppointmentRepository) Reserve(ctx context.Context, appt *entity.Appointment, invoice *billingEntity.Invoice) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		var slot lockedSlot
		err := tx.GetContext(ctx, &slot,
			`SELECT id, provider_id, date FROM slots WHERE id = $1 FOR UPDATE`, appt.SlotID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrSlotNotFound
			}
			logger.Error("AppointmentRepository:Reserve:LockSlot", err)
			return err
		}

		// Half-open interval overlap against every appointment that still
		// occupies slot time.
		var overlapping bool
		err = tx.GetContext(ctx, &overlapping, `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE slot_id = $1
				  AND status IN ('pending', 'confirmed')
				  AND start_time < $3 AND end_time > $2
			)
		`, appt.SlotID, appt.StartTime, appt.EndTime)
		if err != nil {
			logger.Error("AppointmentRepository:Reserve:OverlapCheck", err)
			return err
		}
		if overlapping {
			return ErrOverlap
		}

		err = tx.GetContext(ctx, appt, `
			INSERT INTO appointments
				(customer_id, provider_id, slot_id, package_name, duration_minutes,
				 start_time, end_time, note, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, customer_id, provider_id, slot_id, package_name,
			          duration_minutes, start_time, end_time, note, status,
			          commission_fee, created_at, updated_at
		`, appt.CustomerID, appt.ProviderID, appt.SlotID, appt.PackageName,
			appt.DurationMinutes, appt.StartTime, appt.EndTime, appt.Note, appt.Status)
		if err != nil {
			logger.Error("AppointmentRepository:Reserve:InsertAppointment", err)
			return err
		}

		err = tx.GetContext(ctx, invoice, `
			INSERT INTO invoices
				(user_id, appointment_id, amount, refund_amount, status,
				 transaction_ref, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, user_id, appointment_id, amount, refund_amount, status,
			          transaction_ref, payment_method, created_at
		`, invoice.UserID, appt.ID, invoice.Amount, invoice.RefundAmount,
			invoice.Status, invoice.TransactionRef, invoice.PaymentMethod)
		if err != nil {
			logger.Error("AppointmentRepository:Reserve:InsertInvoice", err)
			return err
		}

		// The slot now carries an active booking
		_, err = tx.ExecContext(ctx,
			`UPDATE slots SET is_available = FALSE, updated_at = NOW() WHERE id = $1`, appt.SlotID)
		if err != nil {
			logger.Error("AppointmentRepository:Reserve:MarkSlot", err)
			return err
		}

		return nil
	})
}

const appointmentWithSlotColumns = `
	a.id, a.customer_id, a.provider_id, a.slot_id, a.package_name,
	a.duration_minutes, a.start_time, a.end_time, a.note, a.status,
	a.commission_fee, a.created_at, a.updated_at, s.date AS slot_date
`

func (r *AppointmentRepository) GetWithSlot(ctx context.Context, id uuid.UUID) (*entity.AppointmentWithSlot, error) {
	query := `
		SELECT ` + appointmentWithSlotColumns + `
		FROM appointments a
		JOIN slots s ON s.id = a.slot_id
		WHERE a.id = $1
	`

	var appt entity.AppointmentWithSlot
	err := r.db.GetContext(ctx, &appt, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AppointmentRepository:GetWithSlot", err)
		return nil, err
	}

	return &appt, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, role string, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedAppointmentEntity, error) {
	ownerColumn := "a.customer_id"
	if role == "provider" {
		ownerColumn = "a.provider_id"
	}
	offset := (p.PageNumber - 1) * p.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems,
		`SELECT COUNT(*) FROM appointments a WHERE `+ownerColumn+` = $1`, userID)
	if err != nil {
		logger.Error("AppointmentRepository:ListByUser:Count", err)
		return nil, err
	}

	query := `
		SELECT ` + appointmentWithSlotColumns + `
		FROM appointments a
		JOIN slots s ON s.id = a.slot_id
		WHERE ` + ownerColumn + ` = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`

	var appointments []entity.AppointmentWithSlot
	err = r.db.SelectContext(ctx, &appointments, query, userID, p.PageSize, offset)
	if err != nil {
		logger.Error("AppointmentRepository:ListByUser:Select", err)
		return nil, err
	}

	return &entity.PaginatedAppointmentEntity{
		Items:      appointments,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// lockStatus locks the appointment row and returns its current status.
func lockStatus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (entity.AppointmentStatus, error) {
	var status entity.AppointmentStatus
	err := tx.GetContext(ctx, &status,
		`SELECT status FROM appointments WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return status, nil
}

func statusIn(status entity.AppointmentStatus, set []entity.AppointmentStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// Approve flips a pending appointment to confirmed. ErrStatusConflict if a
// concurrent action already moved it on.
func (r *AppointmentRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		if status != entity.StatusPending {
			return ErrStatusConflict
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE appointments SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, entity.StatusConfirmed)
		if err != nil {
			logger.Error("AppointmentRepository:Approve", err)
		}
		return err
	})
}

// MarkRefundPending moves the appointment and its paid invoice into
// refund_pending together. The refund amount is decided by the caller
// (full for rejection/expiry, consultation fee only for customer
// cancellation). noteSuffix, when non-empty, is appended to the note.
func (r *AppointmentRepository) MarkRefundPending(ctx context.Context, id uuid.UUID, refundAmount float64, noteSuffix string, from []entity.AppointmentStatus) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		if !statusIn(status, from) {
			return ErrStatusConflict
		}

		// The paid invoice must still be there; a concurrent transition
		// would have resolved it already.
		var invoiceID uuid.UUID
		err = tx.GetContext(ctx, &invoiceID,
			`SELECT id FROM invoices WHERE appointment_id = $1 AND status = 'success' FOR UPDATE`, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrStatusConflict
			}
			logger.Error("AppointmentRepository:MarkRefundPending:LockInvoice", err)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE appointments
			SET status = $2, note = note || $3, updated_at = NOW()
			WHERE id = $1
		`, id, entity.StatusRefundPending, noteSuffix)
		if err != nil {
			logger.Error("AppointmentRepository:MarkRefundPending:Appointment", err)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE invoices SET status = $2, refund_amount = $3 WHERE id = $1
		`, invoiceID, billingEntity.InvoiceStatusRefundPending, refundAmount)
		if err != nil {
			logger.Error("AppointmentRepository:MarkRefundPending:Invoice", err)
			return err
		}

		return nil
	})
}

// CancelUnpaid cancels an appointment that has no paid invoice, removing
// any leftover invoice row.
func (r *AppointmentRepository) CancelUnpaid(ctx context.Context, id uuid.UUID, noteSuffix string, from []entity.AppointmentStatus) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		if !statusIn(status, from) {
			return ErrStatusConflict
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE appointments
			SET status = $2, note = note || $3, updated_at = NOW()
			WHERE id = $1
		`, id, entity.StatusCancelled, noteSuffix)
		if err != nil {
			logger.Error("AppointmentRepository:CancelUnpaid:Appointment", err)
			return err
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM invoices WHERE appointment_id = $1`, id)
		if err != nil {
			logger.Error("AppointmentRepository:CancelUnpaid:Invoice", err)
			return err
		}

		return nil
	})
}

// Complete finalizes a confirmed appointment and accrues the provider's
// earnings in the same transaction.
func (r *AppointmentRepository) Complete(ctx context.Context, id uuid.UUID, commissionFee, providerNet float64) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		if status != entity.StatusConfirmed {
			return ErrStatusConflict
		}

		var providerID uuid.UUID
		err = tx.GetContext(ctx, &providerID,
			`SELECT provider_id FROM appointments WHERE id = $1`, id)
		if err != nil {
			logger.Error("AppointmentRepository:Complete:GetProvider", err)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE appointments
			SET status = $2, commission_fee = $3, updated_at = NOW()
			WHERE id = $1
		`, id, entity.StatusCompleted, commissionFee)
		if err != nil {
			logger.Error("AppointmentRepository:Complete:Appointment", err)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO provider_earnings (provider_id, total_completed_matches, total_net_paid, updated_at)
			VALUES ($1, 1, $2, NOW())
			ON CONFLICT (provider_id) DO UPDATE SET
				total_completed_matches = provider_earnings.total_completed_matches + 1,
				total_net_paid = provider_earnings.total_net_paid + EXCLUDED.total_net_paid,
				updated_at = NOW()
		`, providerID, providerNet)
		if err != nil {
			logger.Error("AppointmentRepository:Complete:Earnings", err)
			return err
		}

		return nil
	})
}

// ListExpiredPending returns pending appointments whose scheduled start is
// already behind us, optionally scoped to one provider.
func (r *AppointmentRepository) ListExpiredPending(ctx context.Context, providerID *uuid.UUID, today time.Time, nowClock string) ([]entity.AppointmentWithSlot, error) {
	query := `
		SELECT ` + appointmentWithSlotColumns + `
		FROM appointments a
		JOIN slots s ON s.id = a.slot_id
		WHERE a.status = 'pending'
		  AND (s.date < $1 OR (s.date = $1 AND a.start_time < $2))
	`
	args := []any{today, nowClock}
	if providerID != nil {
		query += ` AND a.provider_id = $3`
		args = append(args, *providerID)
	}

	var appointments []entity.AppointmentWithSlot
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		logger.Error("AppointmentRepository:ListExpiredPending", err)
		return nil, err
	}
	return appointments, nil
}

// DeleteExpiredUnpaid removes a pending appointment that was never paid.
// A paid invoice or a changed status means someone acted in between, so
// the delete is skipped with ErrStatusConflict.
func (r *AppointmentRepository) DeleteExpiredUnpaid(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		status, err := lockStatus(ctx, tx, id)
		if err != nil {
			return err
		}
		if status != entity.StatusPending {
			return ErrStatusConflict
		}

		var hasPaid bool
		err = tx.GetContext(ctx, &hasPaid,
			`SELECT EXISTS (SELECT 1 FROM invoices WHERE appointment_id = $1 AND status = 'success')`, id)
		if err != nil {
			logger.Error("AppointmentRepository:DeleteExpiredUnpaid:InvoiceCheck", err)
			return err
		}
		if hasPaid {
			return ErrStatusConflict
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM invoices WHERE appointment_id = $1`, id)
		if err != nil {
			logger.Error("AppointmentRepository:DeleteExpiredUnpaid:Invoices", err)
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
		if err != nil {
			logger.Error("AppointmentRepository:DeleteExpiredUnpaid:Appointment", err)
		}
		return err
	})
}
