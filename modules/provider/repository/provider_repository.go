package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/modules/provider/entity"
)

type ProviderRepository struct {
	db database.Database
}

func NewProviderRepository(db database.Database) *ProviderRepository {
	return &ProviderRepository{db: db}
}

type ProviderRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	GetFirstSpecialtyRate(ctx context.Context, providerID uuid.UUID) (*entity.SpecialtyRate, error)
}

func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `
		SELECT id, full_name, email, active, created_at, updated_at
		FROM providers WHERE id = $1
	`

	var provider entity.Provider
	err := r.db.GetContext(ctx, &provider, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProviderRepository:GetByID", err)
		return nil, err
	}

	return &provider, nil
}

// GetFirstSpecialtyRate returns the provider's oldest configured specialty
// rate, or nil when none is configured. The "first row wins" tie-break is
// the documented pricing policy; swap the ORDER BY to change it.
func (r *ProviderRepository) GetFirstSpecialtyRate(ctx context.Context, providerID uuid.UUID) (*entity.SpecialtyRate, error) {
	query := `
		SELECT id, provider_id, specialty, hourly_rate, created_at
		FROM provider_specialty_rates
		WHERE provider_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var rate entity.SpecialtyRate
	err := r.db.GetContext(ctx, &rate, query, providerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProviderRepository:GetFirstSpecialtyRate", err)
		return nil, err
	}

	return &rate, nil
}
