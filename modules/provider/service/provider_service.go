package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"legalease-api/core/constants"
	"legalease-api/core/errors"
	"legalease-api/core/logger"
	"legalease-api/modules/provider/entity"
	"legalease-api/modules/provider/repository"
)

const baseRateCacheTTL = 10 * time.Minute

// ProviderService exposes the two facts the booking core needs about a
// provider: whether they are active, and their pricing basis.
type ProviderService struct {
	repo  repository.ProviderRepositoryInterface
	cache *redis.Client
}

type ProviderServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, *errors.AppError)
	BaseRate(ctx context.Context, providerID uuid.UUID) (float64, *errors.AppError)
}

func NewProviderService(repo repository.ProviderRepositoryInterface, cache *redis.Client) ProviderServiceInterface {
	return &ProviderService{repo: repo, cache: cache}
}

func (s *ProviderService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, *errors.AppError) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get provider", err)
	}
	if provider == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Provider not found", nil)
	}
	return provider, nil
}

// BaseRate resolves the hourly rate used to price bookings: the provider's
// first configured specialty rate, or the platform default when none is
// configured. Cached briefly since it is read on every booking attempt.
func (s *ProviderService) BaseRate(ctx context.Context, providerID uuid.UUID) (float64, *errors.AppError) {
	cacheKey := "provider:base_rate:" + providerID.String()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			if rate, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				return rate, nil
			}
		}
	}

	rate, err := s.repo.GetFirstSpecialtyRate(ctx, providerID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Failed to resolve provider rate", err)
	}

	hourly := constants.DefaultHourlyRate
	if rate != nil {
		hourly = rate.HourlyRate
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, strconv.FormatFloat(hourly, 'f', -1, 64), baseRateCacheTTL).Err(); err != nil {
			logger.Warn("ProviderService:BaseRate:CacheSet", "error", err)
		}
	}

	return hourly, nil
}
