package provider

import (
	"github.com/redis/go-redis/v9"

	"legalease-api/core/database"
	"legalease-api/modules/provider/repository"
	"legalease-api/modules/provider/service"
)

// Init wires the provider lookup service. The module has no routes of its
// own; provider profile management lives in another system.
func Init(db database.Database, cache *redis.Client) service.ProviderServiceInterface {
	repo := repository.NewProviderRepository(db)
	return service.NewProviderService(repo, cache)
}
