package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/modules/billing/entity"
)

type EarningsRepository struct {
	db database.Database
}

func NewEarningsRepository(db database.Database) *EarningsRepository {
	return &EarningsRepository{db: db}
}

type EarningsRepositoryInterface interface {
	GetByProviderID(ctx context.Context, providerID uuid.UUID) (*entity.ProviderEarnings, error)
}

func (r *EarningsRepository) GetByProviderID(ctx context.Context, providerID uuid.UUID) (*entity.ProviderEarnings, error) {
	query := `
		SELECT provider_id, total_completed_matches, total_net_paid, updated_at
		FROM provider_earnings WHERE provider_id = $1
	`

	var earnings entity.ProviderEarnings
	err := r.db.GetContext(ctx, &earnings, query, providerID)
	if err != nil {
		if err == sql.ErrNoRows {
			// No completed appointments yet
			return &entity.ProviderEarnings{ProviderID: providerID}, nil
		}
		logger.Error("EarningsRepository:GetByProviderID", err)
		return nil, err
	}

	return &earnings, nil
}
