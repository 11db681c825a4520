package service

import (
	"context"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListAvailableProducts retrieves all in-stock products.
func (s *catalogService) ListAvailableProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListInStock(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list available products")
		return nil, model.NewStoreUnavailable(err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed available products")

	return products, nil
}
