package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/modules/availability/entity"
)

type SlotRepository struct {
	db database.Database
}

func NewSlotRepository(db database.Database) *SlotRepository {
	return &SlotRepository{db: db}
}

type SlotRepositoryInterface interface {
	Create(ctx context.Context, slot *entity.Slot) (*entity.Slot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
	UpdateTimes(ctx context.Context, id uuid.UUID, startTime, endTime string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAppointmentsInStatuses(ctx context.Context, slotID uuid.UUID, statuses []string) (int, error)
	ExpireStale(ctx context.Context, providerID uuid.UUID, today time.Time, nowClock string) error
	ListUpcoming(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error)
	ListHistory(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error)
}

func (r *SlotRepository) Create(ctx context.Context, slot *entity.Slot) (*entity.Slot, error) {
	query := `
		INSERT INTO slots (provider_id, date, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, provider_id, date, start_time, end_time, is_available, created_at, updated_at
	`

	var created entity.Slot
	err := r.db.GetContext(ctx, &created, query,
		slot.ProviderID, slot.Date, slot.StartTime, slot.EndTime, slot.IsAvailable)
	if err != nil {
		logger.Error("SlotRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `
		SELECT id, provider_id, date, start_time, end_time, is_available, created_at, updated_at
		FROM slots WHERE id = $1
	`

	var slot entity.Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetByID", err)
		return nil, err
	}

	return &slot, nil
}

// HasOverlap reports whether the provider already has a slot on the date
// whose [start,end) window intersects the given one.
func (r *SlotRepository) HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM slots
			WHERE provider_id = $1 AND date = $2
			  AND start_time < $4 AND end_time > $3
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, providerID, date, startTime, endTime)
	if err != nil {
		logger.Error("SlotRepository:HasOverlap", err)
		return false, err
	}

	return exists, nil
}

func (r *SlotRepository) UpdateTimes(ctx context.Context, id uuid.UUID, startTime, endTime string) error {
	query := `
		UPDATE slots
		SET start_time = $2, end_time = $3, is_available = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query, id, startTime, endTime)
	if err != nil {
		logger.Error("SlotRepository:UpdateTimes", err)
		return err
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM slots WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("SlotRepository:Delete", err)
		return err
	}
	return nil
}

// CountAppointmentsInStatuses counts appointments referencing the slot in
// any of the given statuses. Used to guard slot edits and deletes.
func (r *SlotRepository) CountAppointmentsInStatuses(ctx context.Context, slotID uuid.UUID, statuses []string) (int, error) {
	query, args, err := sqlx.In(
		`SELECT COUNT(*) FROM appointments WHERE slot_id = ? AND status IN (?)`,
		slotID, statuses)
	if err != nil {
		return 0, err
	}
	query = r.db.SQLx().Rebind(query)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		logger.Error("SlotRepository:CountAppointmentsInStatuses", err)
		return 0, err
	}

	return count, nil
}

// ExpireStale flips is_available off for the provider's slots whose end
// has passed and which carry no pending/confirmed appointment.
func (r *SlotRepository) ExpireStale(ctx context.Context, providerID uuid.UUID, today time.Time, nowClock string) error {
	query := `
		UPDATE slots
		SET is_available = FALSE, updated_at = NOW()
		WHERE provider_id = $1
		  AND is_available = TRUE
		  AND (date < $2 OR (date = $2 AND end_time <= $3))
		  AND NOT EXISTS (
			SELECT 1 FROM appointments a
			WHERE a.slot_id = slots.id AND a.status IN ('pending', 'confirmed')
		  )
	`

	if err := r.db.ExecContext(ctx, query, providerID, today, nowClock); err != nil {
		logger.Error("SlotRepository:ExpireStale", err)
		return err
	}
	return nil
}

const slotListColumns = `
	s.id, s.provider_id, s.date, s.start_time, s.end_time, s.is_available,
	s.created_at, s.updated_at,
	EXISTS (
		SELECT 1 FROM appointments a
		WHERE a.slot_id = s.id AND a.status IN ('pending', 'confirmed')
	) AS has_active_booking
`

func (r *SlotRepository) ListUpcoming(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error) {
	query := `
		SELECT ` + slotListColumns + `
		FROM slots s
		WHERE s.provider_id = $1 AND s.date >= $2
		ORDER BY s.date ASC, s.start_time ASC
	`

	var slots []entity.SlotWithBooking
	if err := r.db.SelectContext(ctx, &slots, query, providerID, today); err != nil {
		logger.Error("SlotRepository:ListUpcoming", err)
		return nil, err
	}
	return slots, nil
}

func (r *SlotRepository) ListHistory(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error) {
	query := `
		SELECT ` + slotListColumns + `
		FROM slots s
		WHERE s.provider_id = $1 AND s.date < $2
		ORDER BY s.date DESC, s.start_time DESC
	`

	var slots []entity.SlotWithBooking
	if err := r.db.SelectContext(ctx, &slots, query, providerID, today); err != nil {
		logger.Error("SlotRepository:ListHistory", err)
		return nil, err
	}
	return slots, nil
}
